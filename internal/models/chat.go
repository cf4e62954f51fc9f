// internal/models/chat.go
package models

type ChatRequest struct {
	Question string `json:"question"`
}

type ChatResponse struct {
	Success  bool     `json:"success"`
	Answer   string   `json:"answer,omitempty"`
	Sources  []string `json:"sources,omitempty"`
	DataUsed *int     `json:"data_used,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func NewChatSuccess(answer string, sources []string, dataUsed int) *ChatResponse {
	if sources == nil {
		sources = []string{}
	}
	return &ChatResponse{
		Success:  true,
		Answer:   answer,
		Sources:  sources,
		DataUsed: &dataUsed,
	}
}

func NewChatFailure(err error) *ChatResponse {
	return &ChatResponse{
		Success: false,
		Error:   err.Error(),
	}
}
