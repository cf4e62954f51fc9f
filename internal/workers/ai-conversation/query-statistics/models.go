// internal/workers/ai-conversation/query-statistics/models.go
package querystatistics

import "youth-employment-chat/internal/models"

// Input carries nothing the fan-out depends on; every dataset is always read.
type Input struct{}

type Output struct {
	FanOut *models.FanOutResult `json:"fanOut"`
}
