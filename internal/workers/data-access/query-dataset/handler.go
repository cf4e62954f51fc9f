// internal/workers/data-access/query-dataset/handler.go
package querydataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"youth-employment-chat/internal/catalog"
	apperrors "youth-employment-chat/internal/common/errors"
	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/common/metrics"
	"youth-employment-chat/internal/models"
	"youth-employment-chat/internal/store"
)

const (
	TaskType = "query-dataset"
)

var (
	ErrUnknownDataset = errors.New("UNKNOWN_DATASET")
	ErrQueryTimeout   = errors.New("QUERY_TIMEOUT")
)

type Handler struct {
	config  *Config
	catalog *catalog.Catalog
	store   store.TabularStore
	errors  *apperrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, st store.TabularStore, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if cat == nil || st == nil {
		return nil, fmt.Errorf("%s: catalog and store are required", TaskType)
	}

	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		catalog: cat,
		store:   st,
		errors:  apperrors.NewErrorHandler(log),
		logger:  log,
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
		h.errors.HandleJobError(context.Background(), client, job, err)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidInputError("input cannot be nil")
	}

	d, ok := h.catalog.Lookup(input.DatasetKey)
	if !ok {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("%v: %q", ErrUnknownDataset, input.DatasetKey))
	}

	spec := store.SpecFor(d)
	if input.History {
		spec = store.HistoryFor(d)
	}

	start := time.Now()
	rows, err := h.store.Query(ctx, spec)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("%w: %v", ErrQueryTimeout, err)
		}
		return nil, apperrors.NewDatasetQueryFailedError(d.Name, err)
	}
	if rows == nil {
		rows = []models.Row{}
	}

	h.logger.Info("dataset queried", map[string]interface{}{
		"dataset":  d.Key,
		"history":  input.History,
		"rowCount": len(rows),
		"ms":       elapsed,
	})

	return &Output{
		DatasetKey:         d.Key,
		Source:             d.Name,
		Data:               rows,
		RowCount:           len(rows),
		QueryExecutionTime: elapsed,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
