// internal/workers/ai-conversation/classify-question/models.go
package classifyquestion

import "youth-employment-chat/internal/models"

type Input struct {
	Question string `json:"question"`
}

type Output struct {
	Analysis models.QuestionAnalysis `json:"questionAnalysis"`
}
