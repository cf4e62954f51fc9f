// internal/llm/client.go

// Package llm is a single-shot client for OpenAI-compatible chat completion
// endpoints. It never retries: a failed request is terminal for the caller.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	apperrors "youth-employment-chat/internal/common/errors"
	commonhttp "youth-employment-chat/internal/common/http"
	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/common/metrics"
)

var (
	ErrRequestFailed     = errors.New("LLM_REQUEST_FAILED")
	ErrTimeout           = errors.New("LLM_TIMEOUT")
	ErrResponseMalformed = errors.New("LLM_RESPONSE_MALFORMED")
)

const maxErrorBody = 512

// CompletionRequest is one system+user exchange. Zero Model, MaxTokens or
// Temperature fall back to the client's configuration.
type CompletionRequest struct {
	System      string
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
	JSONMode    bool
}

// Completer is the capability the pipeline needs from a language model.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
	RateLimit   float64 // requests per second, <= 0 disables limiting
	Burst       int
}

type Client struct {
	config  *Config
	http    *commonhttp.Client
	limiter *rate.Limiter
	logger  logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if config.RateLimit > 0 {
		burst := config.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), burst)
	}

	return &Client{
		config:  config,
		http:    commonhttp.NewClient(config.Timeout),
		limiter: limiter,
		logger:  log.With(map[string]interface{}{"component": "llm"}),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion request and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	body := c.buildRequest(req)
	start := time.Now()

	text, err := c.do(ctx, body)

	status := "success"
	if err != nil {
		status = string(apperrors.CodeOf(err))
	}
	metrics.LLMRequestDuration.WithLabelValues(body.Model, status).Observe(time.Since(start).Seconds())

	if err != nil {
		c.logger.Error("completion failed", map[string]interface{}{
			"model":    body.Model,
			"error":    err.Error(),
			"duration": time.Since(start).String(),
		})
		return "", err
	}

	c.logger.Info("completion received", map[string]interface{}{
		"model":       body.Model,
		"answerRunes": len([]rune(text)),
		"duration":    time.Since(start).String(),
	})
	return text, nil
}

func (c *Client) buildRequest(req CompletionRequest) chatRequest {
	model := req.Model
	if model == "" {
		model = c.config.Model
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.config.MaxTokens
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.config.Temperature
	}

	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	out := chatRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	if req.JSONMode {
		out.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	return out
}

func (c *Client) do(ctx context.Context, body chatRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", apperrors.NewLLMTimeoutError(fmt.Errorf("%w: rate limiter: %v", ErrTimeout, err))
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", apperrors.NewLLMRequestFailedError(fmt.Errorf("%w: encode request: %v", ErrRequestFailed, err))
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.NewLLMRequestFailedError(fmt.Errorf("%w: %v", ErrRequestFailed, err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.http.DoWithContext(ctx, httpReq)
	if err != nil {
		if isTimeout(ctx, err) {
			return "", apperrors.NewLLMTimeoutError(fmt.Errorf("%w: %v", ErrTimeout, err))
		}
		return "", apperrors.NewLLMRequestFailedError(fmt.Errorf("%w: %v", ErrRequestFailed, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(ctx, err) {
			return "", apperrors.NewLLMTimeoutError(fmt.Errorf("%w: read body: %v", ErrTimeout, err))
		}
		return "", apperrors.NewLLMRequestFailedError(fmt.Errorf("%w: read body: %v", ErrRequestFailed, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := truncateBody(raw, maxErrorBody)
		return "", apperrors.NewLLMRequestFailedError(fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, snippet))
	}

	var decoded chatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", apperrors.NewLLMResponseMalformedError(fmt.Errorf("%w: decode: %v", ErrResponseMalformed, err))
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == nil {
		return "", apperrors.NewLLMResponseMalformedError(fmt.Errorf("%w: no choices in response", ErrResponseMalformed))
	}

	return *decoded.Choices[0].Message.Content, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// truncateBody cuts b to at most limit bytes without splitting a UTF-8 sequence.
func truncateBody(b []byte, limit int) string {
	if len(b) <= limit {
		return string(b)
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(b[cut]) {
		cut--
	}
	return string(b[:cut])
}
