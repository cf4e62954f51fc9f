// internal/workers/ai-conversation/build-context/models.go
package buildcontext

import "youth-employment-chat/internal/models"

type Input struct {
	RelevantData *models.RelevantDataBundle `json:"relevantData"`
}

type Output struct {
	Context string `json:"context"`
}
