// internal/workers/ai-conversation/llm-synthesis/handler_test.go
package llmsynthesis

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"youth-employment-chat/internal/common/config"
	apperrors "youth-employment-chat/internal/common/errors"
	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/llm"
	buildcontext "youth-employment-chat/internal/workers/ai-conversation/build-context"
)

// ==========================
// Mock Completer
// ==========================

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func createTestHandler(t *testing.T, completer llm.Completer) *Handler {
	t.Helper()
	h, err := NewHandler(DefaultConfig(), completer, logger.NewTestLogger(t))
	require.NoError(t, err)
	return h
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	m := new(MockCompleter)
	m.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.CompletionRequest) bool {
		return req.System == systemInstruction &&
			req.Model == "gpt-4.1" &&
			req.MaxTokens == 2000 &&
			req.Temperature == 0.1 &&
			!req.JSONMode &&
			strings.Contains(req.Prompt, "=== 첫 일자리 월평균임금 분포 ===") &&
			strings.Contains(req.Prompt, "**사용자 질문:** 청년층 임금은 얼마인가요?")
	})).Return("300만원 이상 비율은 11.7%입니다.", nil).Once()

	h := createTestHandler(t, m)
	out, err := h.Execute(context.Background(), &Input{
		Question: "청년층 임금은 얼마인가요?",
		Context:  "\n=== 첫 일자리 월평균임금 분포 ===\n- 2024.05: 전체 3817천명\n",
	})

	require.NoError(t, err)
	assert.Equal(t, "300만원 이상 비율은 11.7%입니다.", out.Answer)
	m.AssertExpectations(t)
}

func TestHandler_Execute_EmptyContextUsesSentinel(t *testing.T) {
	m := new(MockCompleter)
	m.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.CompletionRequest) bool {
		return strings.Contains(req.Prompt, "**제공된 실제 데이터:**\n"+buildcontext.NoDataSentinel)
	})).Return("제공된 데이터에서는 해당 정보를 확인할 수 없습니다.", nil).Once()

	out, err := createTestHandler(t, m).Execute(context.Background(), &Input{Question: "", Context: "  "})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Answer)
	m.AssertExpectations(t)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		err      error
		wantCode apperrors.ErrorCode
	}{
		{"llm failure is passed through", "", apperrors.NewLLMRequestFailedError(llm.ErrRequestFailed), apperrors.ErrCodeLLMRequestFailed},
		{"timeout", "", apperrors.NewLLMTimeoutError(llm.ErrTimeout), apperrors.ErrCodeLLMTimeout},
		{"blank answer", "   \n", nil, apperrors.ErrCodeLLMResponseMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockCompleter)
			m.On("Complete", mock.Anything, mock.Anything).Return(tt.answer, tt.err).Once()

			out, err := createTestHandler(t, m).Execute(context.Background(), &Input{Question: "q", Context: "c"})
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
			assert.Equal(t, 0, apperrors.GetRetryCount(apperrors.CodeOf(err)))
			m.AssertNumberOfCalls(t, "Complete", 1)
		})
	}
}

func TestHandler_Execute_AgainstHTTPEndpoint(t *testing.T) {
	var sent map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &sent)
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"답변"}}]}`)
	}))
	defer srv.Close()

	client := llm.NewClient(&llm.Config{BaseURL: srv.URL, APIKey: "k", Timeout: time.Second}, logger.NewTestLogger(t))
	out, err := createTestHandler(t, client).Execute(context.Background(), &Input{Question: "고용률?", Context: "ctx"})
	require.NoError(t, err)
	assert.Equal(t, "답변", out.Answer)

	msgs := sent["messages"].([]interface{})
	require.Len(t, msgs, 2)
	assert.Equal(t, systemInstruction, msgs[0].(map[string]interface{})["content"])
	assert.Equal(t, "gpt-4.1", sent["model"])
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("왜 그만두나요?", "CONTEXT-BLOB")

	assert.Contains(t, p, `"고임금"은 "월 300만원 이상"`)
	assert.Contains(t, p, "1. 제공된 데이터에만 기반하여 답변하세요")
	assert.Contains(t, p, "8. LaTeX 코드나 수학 기호는")
	assert.Contains(t, p, "CONTEXT-BLOB")
	assert.Contains(t, p, "**사용자 질문:** 왜 그만두나요?")
	assert.Less(t, strings.Index(p, "CONTEXT-BLOB"), strings.Index(p, "**사용자 질문:**"))
	assert.Equal(t, p, BuildPrompt("왜 그만두나요?", "CONTEXT-BLOB"))
}

func TestNewHandler_Validation(t *testing.T) {
	_, err := NewHandler(DefaultConfig(), nil, logger.NewNoOpLogger())
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Model = ""
	_, err = NewHandler(cfg, new(MockCompleter), logger.NewNoOpLogger())
	assert.Error(t, err)
}

func TestConfigFromApp(t *testing.T) {
	cfg := ConfigFromApp(
		config.WorkerConfig{Enabled: true, MaxJobsActive: 3, Timeout: 45000},
		config.LLMConfig{Model: "gpt-4o", MaxTokens: 1500, Temperature: 0.2},
	)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 3, cfg.MaxJobsActive)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 1500, cfg.MaxTokens)
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.NoError(t, cfg.Validate())
}
