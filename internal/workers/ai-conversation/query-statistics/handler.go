// internal/workers/ai-conversation/query-statistics/handler.go
package querystatistics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"youth-employment-chat/internal/catalog"
	apperrors "youth-employment-chat/internal/common/errors"
	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/common/metrics"
	"youth-employment-chat/internal/common/observability"
	"youth-employment-chat/internal/models"
	"youth-employment-chat/internal/store"
)

const TaskType = "query-statistics"

type Handler struct {
	config      *Config
	catalog     *catalog.Catalog
	store       store.TabularStore
	redisClient *redis.Client
	errors      *apperrors.ErrorHandler
	logger      logger.Logger
}

// NewHandler builds the fan-out worker. redisClient may be nil, which disables caching.
func NewHandler(config *Config, cat *catalog.Catalog, st store.TabularStore, redisClient *redis.Client, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if cat == nil || st == nil {
		return nil, fmt.Errorf("%s: catalog and store are required", TaskType)
	}

	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:      config,
		catalog:     cat,
		store:       st,
		redisClient: redisClient,
		errors:      apperrors.NewErrorHandler(log),
		logger:      log,
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

	output, err := h.Execute(ctx, &Input{})
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.CodeOf(err))).Inc()
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

// Execute never returns an error. A total store outage yields an empty result.
func (h *Handler) Execute(ctx context.Context, _ *Input) (*Output, error) {
	return &Output{FanOut: h.FanOut(ctx)}, nil
}

// FanOut reads every catalog dataset concurrently and waits for all of them to
// settle. Failed and empty datasets are left out of the result.
func (h *Handler) FanOut(ctx context.Context) *models.FanOutResult {
	ctx, span := observability.StartSpan(ctx, "query-statistics",
		attribute.Int("datasets", h.catalog.Len()))
	defer observability.EndSpan(span, nil)

	if cached, ok := h.readCache(ctx); ok {
		return cached
	}

	descriptors := h.catalog.Descriptors()
	rows := make([][]models.Row, len(descriptors))
	failed := make([]bool, len(descriptors))

	var g errgroup.Group
	for i, d := range descriptors {
		i, d := i, d
		g.Go(func() error {
			r, err := h.queryDataset(ctx, d)
			if err != nil {
				failed[i] = true
				return nil
			}
			rows[i] = r
			return nil
		})
	}
	_ = g.Wait()

	result := models.NewFanOutResult()
	failures := 0
	for i, d := range descriptors {
		if failed[i] {
			failures++
			continue
		}
		if len(rows[i]) == 0 {
			continue
		}
		result.Datasets[d.Key] = rows[i]
		result.Sources = append(result.Sources, d.Name)
		result.DataPoints += len(rows[i])
	}

	h.logger.Info("dataset fan-out settled", map[string]interface{}{
		"datasets":   len(result.Datasets),
		"failures":   failures,
		"dataPoints": result.DataPoints,
	})

	// Partial or empty results are not cached so an outage is not replayed.
	if failures == 0 && result.DataPoints > 0 {
		h.writeCache(ctx, result)
	}

	return result
}

func (h *Handler) queryDataset(ctx context.Context, d catalog.Descriptor) ([]models.Row, error) {
	qctx, cancel := context.WithTimeout(ctx, h.config.DatasetTimeout)
	defer cancel()

	rows, err := h.store.Query(qctx, store.SpecFor(d))
	if err != nil {
		qerr := apperrors.NewDatasetQueryFailedError(d.Key, err)
		status := "error"
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(qctx.Err(), context.DeadlineExceeded) {
			status = "timeout"
		}
		metrics.DatasetQueries.WithLabelValues(d.Key, status).Inc()
		h.logger.Warn("dataset query failed", map[string]interface{}{
			"dataset": d.Key,
			"table":   d.Table,
			"status":  status,
			"error":   qerr.Error(),
		})
		return nil, qerr
	}

	status := "ok"
	if len(rows) == 0 {
		status = "empty"
	}
	metrics.DatasetQueries.WithLabelValues(d.Key, status).Inc()
	return rows, nil
}

func (h *Handler) cacheEnabled() bool {
	return h.redisClient != nil && h.config.CacheTTL > 0
}

func (h *Handler) readCache(ctx context.Context) (*models.FanOutResult, bool) {
	if !h.cacheEnabled() {
		return nil, false
	}

	val, err := h.redisClient.Get(ctx, CacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			h.logger.Warn("fan-out cache read failed", map[string]interface{}{"error": err.Error()})
			metrics.FanOutCache.WithLabelValues("error").Inc()
		} else {
			metrics.FanOutCache.WithLabelValues("miss").Inc()
		}
		return nil, false
	}

	var result models.FanOutResult
	if err := json.Unmarshal([]byte(val), &result); err != nil || result.Datasets == nil {
		h.logger.Warn("fan-out cache entry unreadable", map[string]interface{}{"bytes": len(val)})
		metrics.FanOutCache.WithLabelValues("error").Inc()
		return nil, false
	}

	metrics.FanOutCache.WithLabelValues("hit").Inc()
	h.logger.Debug("fan-out served from cache", map[string]interface{}{
		"datasets":   len(result.Datasets),
		"dataPoints": result.DataPoints,
	})
	return &result, true
}

func (h *Handler) writeCache(ctx context.Context, result *models.FanOutResult) {
	if !h.cacheEnabled() {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := h.redisClient.Set(ctx, CacheKey, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("fan-out cache write failed", map[string]interface{}{"error": err.Error()})
	}
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
