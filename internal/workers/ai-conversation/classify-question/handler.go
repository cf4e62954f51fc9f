// internal/workers/ai-conversation/classify-question/handler.go
package classifyquestion

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "youth-employment-chat/internal/common/errors"
	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/common/metrics"
	"youth-employment-chat/internal/common/observability"
	"youth-employment-chat/internal/models"
)

const TaskType = "classify-question"

type Handler struct {
	config   *Config
	keywords *KeywordTable
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, keywords *KeywordTable, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if keywords == nil {
		keywords = NewKeywordTable()
	}

	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		keywords: keywords,
		errors:   apperrors.NewErrorHandler(log),
		logger:   log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.CodeOf(err))).Inc()
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.CodeOf(err))).Inc()
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	var input Input
	if err := json.Unmarshal([]byte(job.GetVariables()), &input); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse job variables: %v", err))
	}
	return &input, nil
}

// Execute never fails; the error return keeps the worker signature uniform.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return &Output{Analysis: h.Classify(ctx, input.Question)}, nil
}

// Classify runs the keyword classifier under a pipeline span.
func (h *Handler) Classify(ctx context.Context, question string) models.QuestionAnalysis {
	_, span := observability.StartSpan(ctx, "classify-question")
	defer observability.EndSpan(span, nil)

	analysis := h.keywords.Classify(question)

	h.logger.Debug("question classified", map[string]interface{}{
		"categories": analysis.Categories,
		"intent":     analysis.Intent,
		"timeframe":  analysis.Timeframe,
	})
	return analysis
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
	}
}
