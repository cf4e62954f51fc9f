// internal/workers/ai-conversation/llm-synthesis/models.go
package llmsynthesis

type Input struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type Output struct {
	Answer string `json:"answer"`
}
