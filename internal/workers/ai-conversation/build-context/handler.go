// internal/workers/ai-conversation/build-context/handler.go
package buildcontext

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

const TaskType = "build-context"

type Handler struct {
	config  *Config
	builder *Builder
	obs     *observability.Observability
	errors  *apperrors.ErrorHandler
	logger  logger.Logger
}

// NewHandler builds the context worker. obs may be nil.
func NewHandler(config *Config, cat *catalog.Catalog, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if cat == nil {
		return nil, fmt.Errorf("%s: catalog is required", TaskType)
	}

	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		builder: NewBuilder(cat),
		obs:     obs,
		errors:  apperrors.NewErrorHandler(log),
		logger:  log,
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return &Output{Context: h.Build(ctx, input.RelevantData)}, nil
}

func (h *Handler) Build(ctx context.Context, bundle *models.RelevantDataBundle) string {
	ctx, span := observability.StartSpan(ctx, "build-context")
	defer observability.EndSpan(span, nil)

	text := h.builder.Build(bundle)
	h.obs.RecordContextSize(ctx, len(text))

	tables := 0
	if bundle != nil {
		tables = len(bundle.Datasets)
	}
	h.logger.Info("context built", map[string]interface{}{
		"bytes":  len(text),
		"tables": tables,
	})
	return text
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
