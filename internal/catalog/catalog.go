// internal/catalog/catalog.go

// Package catalog defines the fixed set of youth-employment statistical tables
// the chat pipeline reads, and which topic categories route to which tables.
package catalog

import (
	"fmt"

	"youth-employment-chat/internal/models"
)

// Dataset keys, in catalog order.
const (
	KeyEmployment           = "employment"
	KeySalary               = "salary"
	KeyUnemployment         = "unemployment"
	KeyEmploymentDuration   = "employmentDuration"
	KeyMajorMatch           = "majorMatch"
	KeyIndustryEmployment   = "industryEmployment"
	KeySchoolStatus         = "schoolStatus"
	KeyGraduationDuration   = "graduationDuration"
	KeyVocationalTraining   = "vocationalTraining"
	KeyWorkExperience       = "workExperience"
	KeyFirstJobIndustry     = "firstJobIndustry"
	KeyFirstJobOccupation   = "firstJobOccupation"
	KeyQuitReason           = "quitReason"
	KeyJobSearchRoute       = "jobSearchRoute"
	KeyLeaveExperience      = "leaveExperience"
	KeyWorkExperienceType   = "workExperienceType"
	KeyUnemploymentActivity = "unemploymentActivity"
	KeyJobExamPrep          = "jobExamPrep"
	KeyContinuousEmployment = "continuousEmployment"
)

const (
	PeriodColumn = "시점"
	YouthAgeBand = "20~34세"
	GenderTotal  = "계"
)

// KnownKeys is the closed set of dataset keys the context builder has line templates for.
var KnownKeys = []string{
	KeyEmployment, KeySalary, KeyUnemployment, KeyEmploymentDuration, KeyMajorMatch,
	KeyIndustryEmployment, KeySchoolStatus, KeyGraduationDuration, KeyVocationalTraining,
	KeyWorkExperience, KeyFirstJobIndustry, KeyFirstJobOccupation, KeyQuitReason,
	KeyJobSearchRoute, KeyLeaveExperience, KeyWorkExperienceType, KeyUnemploymentActivity,
	KeyJobExamPrep, KeyContinuousEmployment,
}

// Filter is an equality predicate on one column.
type Filter struct {
	Column string `mapstructure:"column" json:"column"`
	Value  string `mapstructure:"value" json:"value"`
}

// Descriptor describes one statistical table and the fixed slice of it the pipeline reads.
type Descriptor struct {
	Key          string   `mapstructure:"key" json:"key"`
	Name         string   `mapstructure:"name" json:"name"`
	Table        string   `mapstructure:"table" json:"table"`
	Filters      []Filter `mapstructure:"filters" json:"filters"`
	PeriodColumn string   `mapstructure:"period_column" json:"periodColumn"`
	Limit        int      `mapstructure:"limit" json:"limit"`
}

// Catalog is immutable once built. It is safe to share across requests.
type Catalog struct {
	descriptors []Descriptor
	index       map[string]int
	routes      map[models.Category][]string
}

// New validates the descriptors and category routes and builds a Catalog.
// A nil routes map uses DefaultRoutes for the given descriptors.
func New(descriptors []Descriptor, routes map[models.Category][]string) (*Catalog, error) {
	if len(descriptors) == 0 {
		return nil, fmt.Errorf("catalog: no datasets defined")
	}

	known := make(map[string]bool, len(KnownKeys))
	for _, k := range KnownKeys {
		known[k] = true
	}

	c := &Catalog{
		descriptors: make([]Descriptor, len(descriptors)),
		index:       make(map[string]int, len(descriptors)),
	}
	for i, d := range descriptors {
		if d.Key == "" || d.Table == "" {
			return nil, fmt.Errorf("catalog: dataset %d missing key or table", i)
		}
		if !known[d.Key] {
			return nil, fmt.Errorf("catalog: unknown dataset key %q", d.Key)
		}
		if _, dup := c.index[d.Key]; dup {
			return nil, fmt.Errorf("catalog: duplicate dataset key %q", d.Key)
		}
		if d.Limit <= 0 {
			return nil, fmt.Errorf("catalog: dataset %q limit must be positive", d.Key)
		}
		if d.PeriodColumn == "" {
			d.PeriodColumn = PeriodColumn
		}
		if d.Name == "" {
			d.Name = d.Key
		}
		d.Filters = append([]Filter(nil), d.Filters...)
		c.descriptors[i] = d
		c.index[d.Key] = i
	}

	if routes == nil {
		routes = DefaultRoutes(c.Keys())
	}
	c.routes = make(map[models.Category][]string, len(routes))
	for cat, keys := range routes {
		for _, k := range keys {
			if _, ok := c.index[k]; !ok {
				return nil, fmt.Errorf("catalog: category %q routes to unknown dataset %q", cat, k)
			}
		}
		c.routes[cat] = append([]string(nil), keys...)
	}

	return c, nil
}

// Default returns the built-in catalog of the 19 youth (20~34) tables.
func Default() *Catalog {
	c, err := New(DefaultDescriptors(), nil)
	if err != nil {
		panic(err)
	}
	return c
}

// Descriptors returns a copy of the descriptors in catalog order.
func (c *Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, len(c.descriptors))
	copy(out, c.descriptors)
	return out
}

func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.descriptors))
	for i, d := range c.descriptors {
		keys[i] = d.Key
	}
	return keys
}

func (c *Catalog) Len() int { return len(c.descriptors) }

func (c *Catalog) Lookup(key string) (Descriptor, bool) {
	i, ok := c.index[key]
	if !ok {
		return Descriptor{}, false
	}
	return c.descriptors[i], true
}

// Position returns the catalog index of key, or -1.
func (c *Catalog) Position(key string) int {
	if i, ok := c.index[key]; ok {
		return i
	}
	return -1
}

// DatasetsFor returns the dataset keys a category makes relevant.
func (c *Catalog) DatasetsFor(cat models.Category) []string {
	return append([]string(nil), c.routes[cat]...)
}

// DefaultRoutes is the category -> dataset mapping. statistics, comparison and
// trend questions are broad and pull in every dataset in keys.
func DefaultRoutes(keys []string) map[models.Category][]string {
	all := append([]string(nil), keys...)
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}
	only := func(ks ...string) []string {
		out := make([]string, 0, len(ks))
		for _, k := range ks {
			if present[k] {
				out = append(out, k)
			}
		}
		return out
	}

	return map[models.Category][]string{
		models.CategoryEmployment:   only(KeyEmployment, KeyIndustryEmployment, KeyFirstJobIndustry, KeyFirstJobOccupation),
		models.CategorySalary:       only(KeySalary),
		models.CategoryIndustry:     only(KeyIndustryEmployment, KeyFirstJobIndustry),
		models.CategoryEducation:    only(KeyMajorMatch, KeyGraduationDuration, KeySchoolStatus, KeyLeaveExperience),
		models.CategoryUnemployment: only(KeyUnemployment, KeyUnemploymentActivity, KeyJobExamPrep),
		models.CategoryDuration:     only(KeyEmploymentDuration, KeyGraduationDuration, KeyContinuousEmployment),
		models.CategoryStatistics:   all,
		models.CategoryComparison:   all,
		models.CategoryTrend:        all,
	}
}

func youth(ageColumn string, limit int, key, name, table string, genderTotal bool) Descriptor {
	var filters []Filter
	if genderTotal {
		filters = append(filters, Filter{Column: "성별", Value: GenderTotal})
	}
	filters = append(filters, Filter{Column: ageColumn, Value: YouthAgeBand})
	return Descriptor{
		Key:          key,
		Name:         name,
		Table:        table,
		Filters:      filters,
		PeriodColumn: PeriodColumn,
		Limit:        limit,
	}
}

// DefaultDescriptors returns the built-in descriptors in catalog order.
func DefaultDescriptors() []Descriptor {
	employment := youth("연령별", 5, KeyEmployment, "연령별 경제활동상태", "연령별_경제활동상태", false)
	employment.Filters = append(employment.Filters, Filter{Column: "수학여부", Value: "전체"})

	return []Descriptor{
		employment,
		youth("연령구분", 5, KeySalary, "첫 일자리 월평균임금", "성별_첫_일자리_월평균임금", true),
		youth("연령별", 5, KeyUnemployment, "미취업 기간별 분포", "성별_미취업기간별_미취업자", true),
		youth("연령구분", 5, KeyEmploymentDuration, "첫 취업 소요기간", "성별_첫_취업_소요기간_및_평균소요기간", false),
		youth("연령별", 5, KeyMajorMatch, "전공 일치 여부", "성별_최종학교_전공일치_여부", true),
		youth("연령구분(1)", 20, KeyIndustryEmployment, "산업별 취업분포", "졸업_중퇴_취업자의_산업별_취업분포_11차", false),
		youth("연령별", 3, KeySchoolStatus, "수학여부", "연령별_수학여부", false),
		youth("연령구분", 3, KeyGraduationDuration, "대학졸업소요기간", "성_및_학제별_대학졸업소요기간", true),
		youth("연령구분", 3, KeyVocationalTraining, "직업교육훈련경험", "성별_직업교육_훈련__경험_유무_및_시기", true),
		youth("연령구분", 3, KeyWorkExperience, "취업경험유무", "성별_취업경험유무_및_횟수_졸업_중퇴_인구", true),
		youth("연령구분", 5, KeyFirstJobIndustry, "첫일자리산업", "성별_첫일자리_산업_졸업_중퇴_취업유경험자", true),
		youth("연령구분", 5, KeyFirstJobOccupation, "첫일자리직업", "성별_첫일자리_직업_졸업_중퇴취업유경험자", true),
		youth("연령구분", 3, KeyQuitReason, "퇴직사유", "성별_첫일자리를_그만둔_사유", true),
		youth("연령구분", 5, KeyJobSearchRoute, "취업경로", "성별_학력별_취업경로__졸업_중퇴_취업자", true),
		youth("연령구분", 3, KeyLeaveExperience, "휴학경험", "성별_휴학경험유무_평균휴학기간_대졸자", true),
		youth("연령구분", 3, KeyWorkExperienceType, "직장체험형태", "성별_직장체험형태_직장체험경험자", true),
		youth("연령별", 3, KeyUnemploymentActivity, "미취업활동", "성별_미취업기간활동별_미취업자", true),
		youth("연령구분", 3, KeyJobExamPrep, "취업시험준비", "성별_취업시험준비유무_및_준비분야_비경제활", true),
		youth("연령구분", 3, KeyContinuousEmployment, "근속기간", "첫직장_근속기간", false),
	}
}
