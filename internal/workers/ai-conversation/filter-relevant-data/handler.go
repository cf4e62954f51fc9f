// internal/workers/ai-conversation/filter-relevant-data/handler.go
package filterrelevantdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"youth-employment-chat/internal/catalog"
	apperrors "youth-employment-chat/internal/common/errors"
	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/common/metrics"
	"youth-employment-chat/internal/common/observability"
	"youth-employment-chat/internal/models"
)

const TaskType = "filter-relevant-data"

type Handler struct {
	config *Config
	filter *Filter
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if cat == nil {
		return nil, fmt.Errorf("%s: catalog is required", TaskType)
	}

	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		filter: NewFilter(cat),
		errors: apperrors.NewErrorHandler(log),
		logger: log,
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
	if input.FanOut == nil {
		input.FanOut = models.NewFanOutResult()
	}
	return &input, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return &Output{RelevantData: h.Filter(ctx, input.FanOut, input.Analysis)}, nil
}

func (h *Handler) Filter(ctx context.Context, fanOut *models.FanOutResult, analysis models.QuestionAnalysis) *models.RelevantDataBundle {
	_, span := observability.StartSpan(ctx, "filter-relevant-data")
	defer observability.EndSpan(span, nil)

	bundle := h.filter.Apply(fanOut, analysis)

	h.logger.Info("relevant data selected", map[string]interface{}{
		"categories": analysis.Categories,
		"intent":     analysis.Intent,
		"sources":    bundle.Sources,
		"dataPoints": bundle.DataPoints,
	})
	return bundle
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
