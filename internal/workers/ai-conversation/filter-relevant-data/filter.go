// internal/workers/ai-conversation/filter-relevant-data/filter.go
package filterrelevantdata

import (
	"youth-employment-chat/internal/catalog"
	"youth-employment-chat/internal/models"
)

// industryKeywords pull the industry tables in even when the industry
// category itself did not match.
var industryKeywords = []string{"산업", "업종", "분야", "제조업", "서비스업"}

// Filter narrows a fan-out result to the datasets a question is about.
type Filter struct {
	catalog *catalog.Catalog
}

func NewFilter(cat *catalog.Catalog) *Filter {
	return &Filter{catalog: cat}
}

// SelectKeys returns the dataset keys relevant to the analysis, in catalog
// order. When nothing matches, every dataset present in the fan-out is chosen.
func (f *Filter) SelectKeys(fanOut *models.FanOutResult, analysis models.QuestionAnalysis) []string {
	selected := make(map[string]bool)

	if analysis.HasCategory(models.CategoryIndustry) || hasAnyKeyword(analysis, industryKeywords) {
		selected[catalog.KeyIndustryEmployment] = true
		selected[catalog.KeyFirstJobIndustry] = true
	}

	if analysis.Intent == models.IntentReason {
		selected[catalog.KeyQuitReason] = true
		selected[catalog.KeyUnemploymentActivity] = true
	}

	for _, c := range analysis.Categories {
		for _, key := range f.catalog.DatasetsFor(c) {
			selected[key] = true
		}
	}

	if len(selected) == 0 && fanOut != nil {
		for key, rows := range fanOut.Datasets {
			if len(rows) > 0 {
				selected[key] = true
			}
		}
	}

	keys := make([]string, 0, len(selected))
	for _, key := range f.catalog.Keys() {
		if selected[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

// Apply copies the selected datasets that have rows into a bundle. The bundle
// is always a subset of the fan-out result.
func (f *Filter) Apply(fanOut *models.FanOutResult, analysis models.QuestionAnalysis) *models.RelevantDataBundle {
	bundle := &models.RelevantDataBundle{
		Sources:  []string{},
		Datasets: make(map[string][]models.Row),
	}
	if fanOut == nil {
		return bundle
	}

	for _, key := range f.SelectKeys(fanOut, analysis) {
		rows := fanOut.Datasets[key]
		if len(rows) == 0 {
			continue
		}
		d, ok := f.catalog.Lookup(key)
		if !ok {
			continue
		}
		bundle.Datasets[key] = rows
		bundle.Sources = append(bundle.Sources, d.Name)
		bundle.DataPoints += len(rows)
	}
	return bundle
}

func hasAnyKeyword(analysis models.QuestionAnalysis, keywords []string) bool {
	for _, k := range keywords {
		if analysis.HasKeyword(k) {
			return true
		}
	}
	return false
}
