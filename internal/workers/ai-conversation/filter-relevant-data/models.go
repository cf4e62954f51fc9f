// internal/workers/ai-conversation/filter-relevant-data/models.go
package filterrelevantdata

import "youth-employment-chat/internal/models"

type Input struct {
	FanOut   *models.FanOutResult    `json:"fanOut"`
	Analysis models.QuestionAnalysis `json:"questionAnalysis"`
}

type Output struct {
	RelevantData *models.RelevantDataBundle `json:"relevantData"`
}
