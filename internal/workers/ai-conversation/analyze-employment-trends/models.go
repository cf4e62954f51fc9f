// internal/workers/ai-conversation/analyze-employment-trends/models.go
package analyzeemploymenttrends

import "youth-employment-chat/internal/models"

type Input struct{}

type Output struct {
	TrendAnalysis *models.TrendAnalysisResponse `json:"trendAnalysis"`
}

// history is the normalised series the prompt is built from.
type history struct {
	Employment         []models.EmploymentPoint
	Salary             []models.SalaryPoint
	Unemployment       []models.UnemploymentDurationPoint
	EmploymentDuration []models.EmploymentDurationPoint
}

func (h *history) summary() *models.TrendDataSummary {
	return &models.TrendDataSummary{
		EmploymentPoints:         len(h.Employment),
		SalaryPoints:             len(h.Salary),
		UnemploymentPoints:       len(h.Unemployment),
		EmploymentDurationPoints: len(h.EmploymentDuration),
	}
}

// lastPeriod is the period of the newest employment point, or nil.
func (h *history) lastPeriod() *string {
	if len(h.Employment) == 0 {
		return nil
	}
	p := h.Employment[len(h.Employment)-1].Period
	return &p
}
