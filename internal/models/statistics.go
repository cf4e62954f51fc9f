// internal/models/statistics.go
package models

// Row is one record of a statistical table, keyed by column name.
// Values are strings or float64 depending on the column.
type Row map[string]interface{}

type Category string

const (
	CategoryEmployment   Category = "employment"
	CategorySalary       Category = "salary"
	CategoryIndustry     Category = "industry"
	CategoryEducation    Category = "education"
	CategoryUnemployment Category = "unemployment"
	CategoryDuration     Category = "duration"
	CategoryStatistics   Category = "statistics"
	CategoryComparison   Category = "comparison"
	CategoryTrend        Category = "trend"
	CategoryRegion       Category = "region"
	CategoryGender       Category = "gender"
	CategoryAge          Category = "age"
)

// AllCategories lists the categories in classification order.
var AllCategories = []Category{
	CategoryEmployment,
	CategorySalary,
	CategoryIndustry,
	CategoryEducation,
	CategoryUnemployment,
	CategoryDuration,
	CategoryStatistics,
	CategoryComparison,
	CategoryTrend,
	CategoryRegion,
	CategoryGender,
	CategoryAge,
}

type Intent string

const (
	IntentLocation   Intent = "location_query"
	IntentTime       Intent = "time_query"
	IntentQuantity   Intent = "quantity_query"
	IntentReason     Intent = "reason_query"
	IntentMethod     Intent = "method_query"
	IntentComparison Intent = "comparison_query"
	IntentTrend      Intent = "trend_query"
	IntentGeneral    Intent = "general_query"
)

// AllIntents lists the intents in detection priority order; general_query is the fallback.
var AllIntents = []Intent{
	IntentLocation,
	IntentTime,
	IntentQuantity,
	IntentReason,
	IntentMethod,
	IntentComparison,
	IntentTrend,
	IntentGeneral,
}

// QuestionAnalysis is the classifier's view of a single question.
type QuestionAnalysis struct {
	Keywords   []string   `json:"keywords"`
	Categories []Category `json:"categories"`
	Intent     Intent     `json:"intent"`
	Timeframe  string     `json:"timeframe,omitempty"`
}

func (a QuestionAnalysis) HasCategory(c Category) bool {
	for _, have := range a.Categories {
		if have == c {
			return true
		}
	}
	return false
}

func (a QuestionAnalysis) HasKeyword(k string) bool {
	for _, have := range a.Keywords {
		if have == k {
			return true
		}
	}
	return false
}

// FanOutResult holds every dataset that returned at least one row.
type FanOutResult struct {
	Sources    []string         `json:"sources"`
	DataPoints int              `json:"dataPoints"`
	Datasets   map[string][]Row `json:"datasets"`
}

func NewFanOutResult() *FanOutResult {
	return &FanOutResult{
		Sources:  []string{},
		Datasets: make(map[string][]Row),
	}
}

// RelevantDataBundle is the subset of a FanOutResult handed to the context builder.
type RelevantDataBundle struct {
	Sources    []string         `json:"sources"`
	DataPoints int              `json:"dataPoints"`
	Datasets   map[string][]Row `json:"datasets"`
}

func (b *RelevantDataBundle) IsEmpty() bool {
	return b == nil || len(b.Datasets) == 0
}
