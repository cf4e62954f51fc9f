// internal/workers/ai-conversation/analyze-employment-trends/handler.go
package analyzeemploymenttrends

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"golang.org/x/sync/errgroup"

	"youth-employment-chat/internal/catalog"
	apperrors "youth-employment-chat/internal/common/errors"
	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/common/metrics"
	"youth-employment-chat/internal/common/observability"
	"youth-employment-chat/internal/common/validation"
	"youth-employment-chat/internal/llm"
	"youth-employment-chat/internal/models"
	"youth-employment-chat/internal/store"
)

const TaskType = "analyze-employment-trends"

var (
	ErrPredictionNotJSON = errors.New("PREDICTION_NOT_JSON")
	ErrPredictionSchema  = errors.New("PREDICTION_SCHEMA_VIOLATION")
)

type Handler struct {
	config  *Config
	catalog *catalog.Catalog
	store   store.TabularStore
	llm     llm.Completer
	errors  *apperrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, st store.TabularStore, completer llm.Completer, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if cat == nil || st == nil || completer == nil {
		return nil, fmt.Errorf("%s: catalog, store and llm client are required", TaskType)
	}

	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		catalog: cat,
		store:   st,
		llm:     completer,
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

func (h *Handler) Execute(ctx context.Context, _ *Input) (*Output, error) {
	resp, err := h.Analyze(ctx)
	if err != nil {
		return nil, err
	}
	return &Output{TrendAnalysis: resp}, nil
}

// Analyze loads the full history of the four headline series, asks the model
// for predictions and validates the returned document. Every failure is terminal.
func (h *Handler) Analyze(ctx context.Context) (resp *models.TrendAnalysisResponse, err error) {
	ctx, span := observability.StartSpan(ctx, "analyze-employment-trends")
	defer func() {
		observability.EndSpan(span, err)
		status := "success"
		if err != nil {
			status = string(apperrors.CodeOf(err))
		}
		metrics.TrendAnalyses.WithLabelValues(status).Inc()
	}()

	hist, err := h.loadHistory(ctx)
	if err != nil {
		return nil, err
	}

	h.logger.Info("trend history loaded", map[string]interface{}{
		"employment":         len(hist.Employment),
		"salary":             len(hist.Salary),
		"unemployment":       len(hist.Unemployment),
		"employmentDuration": len(hist.EmploymentDuration),
	})

	prompt, err := buildPrompt(hist)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	text, err := h.llm.Complete(ctx, llm.CompletionRequest{
		System:      systemInstruction,
		Prompt:      prompt,
		Model:       h.config.Model,
		MaxTokens:   h.config.MaxTokens,
		Temperature: h.config.Temperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	doc, err := parsePrediction(text)
	if err != nil {
		h.logger.Warn("prediction rejected", map[string]interface{}{
			"error": err.Error(),
			"bytes": len(text),
		})
		return nil, apperrors.NewPredictionParseFailedError(err)
	}

	return &models.TrendAnalysisResponse{
		Success:     true,
		Data:        doc,
		DataSummary: hist.summary(),
		LastPeriod:  hist.lastPeriod(),
	}, nil
}

// historyFilters replace the catalog filters for trend reads. Salary history
// spans every age band, and employment duration keeps only the overall row.
var historyFilters = map[string][]catalog.Filter{
	catalog.KeySalary: {
		{Column: "성별", Value: catalog.GenderTotal},
	},
	catalog.KeyEmploymentDuration: {
		{Column: "전체", Value: "전체"},
		{Column: "연령구분", Value: catalog.YouthAgeBand},
	},
}

func historySpec(d catalog.Descriptor) store.QuerySpec {
	spec := store.HistoryFor(d)
	if filters, ok := historyFilters[d.Key]; ok {
		spec.Filters = filters
	}
	return spec
}

func (h *Handler) loadHistory(ctx context.Context) (*history, error) {
	keys := []string{catalog.KeyEmployment, catalog.KeySalary, catalog.KeyUnemployment, catalog.KeyEmploymentDuration}
	rows := make([][]models.Row, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		i := i
		d, ok := h.catalog.Lookup(key)
		if !ok {
			return nil, apperrors.NewInternalError(fmt.Errorf("catalog has no %q dataset", key))
		}
		g.Go(func() error {
			r, err := h.store.Query(gctx, historySpec(d))
			if err != nil {
				return apperrors.NewDataFetchFailedError(d.Name, err)
			}
			rows[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &history{
		Employment:         normalizeEmployment(rows[0]),
		Salary:             normalizeSalary(rows[1]),
		Unemployment:       normalizeUnemployment(rows[2]),
		EmploymentDuration: normalizeEmploymentDuration(rows[3]),
	}, nil
}

// parsePrediction decodes the model output and checks it against predictionSchema.
// A surrounding markdown code fence is tolerated.
func parsePrediction(text string) (map[string]interface{}, error) {
	body := strings.TrimSpace(text)
	if strings.HasPrefix(body, "```") {
		body = strings.TrimPrefix(body, "```json")
		body = strings.TrimPrefix(body, "```")
		body = strings.TrimSuffix(body, "```")
		body = strings.TrimSpace(body)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictionNotJSON, err)
	}
	if err := validation.ValidateDocument(predictionSchema, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictionSchema, err)
	}
	return doc, nil
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
