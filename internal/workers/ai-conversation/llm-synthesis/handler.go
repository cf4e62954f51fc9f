// internal/workers/ai-conversation/llm-synthesis/handler.go
package llmsynthesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "youth-employment-chat/internal/common/errors"
	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/common/metrics"
	"youth-employment-chat/internal/common/observability"
	"youth-employment-chat/internal/llm"
	buildcontext "youth-employment-chat/internal/workers/ai-conversation/build-context"
)

const (
	TaskType = "llm-synthesis"
)

var (
	ErrEmptyAnswer = errors.New("LLM_EMPTY_ANSWER")
)

type Handler struct {
	config *Config
	llm    llm.Completer
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, completer llm.Completer, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if completer == nil {
		return nil, fmt.Errorf("%s: llm client is required", TaskType)
	}

	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		llm:    completer,
		errors: apperrors.NewErrorHandler(log),
		logger: log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.GetKey(),
		"workflowKey": job.GetProcessInstanceKey(),
	})

	var input Input
	if err := json.Unmarshal([]byte(job.GetVariables()), &input); err != nil {
		h.errors.HandleJobError(context.Background(), client, job,
			apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.CodeOf(err))).Inc()
		// LLM failures carry no retries; the turn fails as a whole.
		h.errors.HandleJobError(context.Background(), client, job, err)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (output *Output, err error) {
	ctx, span := observability.StartSpan(ctx, "llm-synthesis")
	defer func() { observability.EndSpan(span, err) }()

	blob := input.Context
	if strings.TrimSpace(blob) == "" {
		blob = buildcontext.NoDataSentinel
	}

	answer, err := h.llm.Complete(ctx, llm.CompletionRequest{
		System:      systemInstruction,
		Prompt:      BuildPrompt(input.Question, blob),
		Model:       h.config.Model,
		MaxTokens:   h.config.MaxTokens,
		Temperature: h.config.Temperature,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(answer) == "" {
		return nil, apperrors.NewLLMResponseMalformedError(ErrEmptyAnswer)
	}

	h.logger.Info("LLM synthesis completed", map[string]interface{}{
		"contextBytes": len(blob),
		"answerRunes":  len([]rune(answer)),
	})

	return &Output{Answer: answer}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)

	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
	}
}

// Execute method for direct usage
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// Synthesize answers question from contextBlob. A blank blob is replaced by the
// no-data sentinel before the model is called.
func (h *Handler) Synthesize(ctx context.Context, question, contextBlob string) (string, error) {
	out, err := h.execute(ctx, &Input{Question: question, Context: contextBlob})
	if err != nil {
		return "", err
	}
	return out.Answer, nil
}
