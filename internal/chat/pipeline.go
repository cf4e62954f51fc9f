// internal/chat/pipeline.go

// Package chat answers a free-text question about youth employment by chaining
// the classification, retrieval, filtering, context and synthesis stages.
package chat

import (
	"context"
	"fmt"
	"time"

	apperrors "youth-employment-chat/internal/common/errors"
	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/common/metrics"
	"youth-employment-chat/internal/common/observability"
	"youth-employment-chat/internal/common/validation"
	"youth-employment-chat/internal/models"
)

const DefaultMaxQuestionLength = 500

type Classifier interface {
	Classify(ctx context.Context, question string) models.QuestionAnalysis
}

// Retriever reads every catalog dataset. Per-dataset failures are absorbed.
type Retriever interface {
	FanOut(ctx context.Context) *models.FanOutResult
}

type RelevanceFilter interface {
	Filter(ctx context.Context, fanOut *models.FanOutResult, analysis models.QuestionAnalysis) *models.RelevantDataBundle
}

type ContextBuilder interface {
	Build(ctx context.Context, bundle *models.RelevantDataBundle) string
}

type Synthesizer interface {
	Synthesize(ctx context.Context, question, contextBlob string) (string, error)
}

type Stages struct {
	Classifier  Classifier
	Retriever   Retriever
	Filter      RelevanceFilter
	Builder     ContextBuilder
	Synthesizer Synthesizer
}

func (s Stages) validate() error {
	if s.Classifier == nil || s.Retriever == nil || s.Filter == nil || s.Builder == nil || s.Synthesizer == nil {
		return fmt.Errorf("all pipeline stages are required")
	}
	return nil
}

type Pipeline struct {
	stages            Stages
	maxQuestionLength int
	obs               *observability.Observability
	logger            logger.Logger
}

// NewPipeline wires the stages together. maxQuestionLength <= 0 selects
// DefaultMaxQuestionLength; obs may be nil.
func NewPipeline(stages Stages, maxQuestionLength int, obs *observability.Observability, log logger.Logger) (*Pipeline, error) {
	if err := stages.validate(); err != nil {
		return nil, err
	}
	if maxQuestionLength <= 0 {
		maxQuestionLength = DefaultMaxQuestionLength
	}
	return &Pipeline{
		stages:            stages,
		maxQuestionLength: maxQuestionLength,
		obs:               obs,
		logger:            log.With(map[string]interface{}{"component": "chat"}),
	}, nil
}

// Ask runs one question through the pipeline. Retrieval never fails the
// request; a store outage yields a sentinel context and the model is still
// asked. Validation and model errors are returned as StandardErrors.
func (p *Pipeline) Ask(ctx context.Context, question string) (resp *models.ChatResponse, err error) {
	ctx, span := observability.StartSpan(ctx, "chat.ask")
	defer func() {
		observability.EndSpan(span, err)
		status := "success"
		if err != nil {
			status = string(apperrors.CodeOf(err))
		}
		metrics.ChatRequests.WithLabelValues(status).Inc()
	}()

	question, err = validation.SanitizeQuestion(question, p.maxQuestionLength)
	if err != nil {
		return nil, err
	}

	var analysis models.QuestionAnalysis
	p.stage(ctx, "classify", func(ctx context.Context) error {
		analysis = p.stages.Classifier.Classify(ctx, question)
		return nil
	})

	var fanOut *models.FanOutResult
	p.stage(ctx, "fan_out", func(ctx context.Context) error {
		fanOut = p.stages.Retriever.FanOut(ctx)
		return nil
	})

	var bundle *models.RelevantDataBundle
	p.stage(ctx, "filter", func(ctx context.Context) error {
		bundle = p.stages.Filter.Filter(ctx, fanOut, analysis)
		return nil
	})

	var blob string
	p.stage(ctx, "build_context", func(ctx context.Context) error {
		blob = p.stages.Builder.Build(ctx, bundle)
		return nil
	})

	var answer string
	err = p.stage(ctx, "synthesis", func(ctx context.Context) error {
		var serr error
		answer, serr = p.stages.Synthesizer.Synthesize(ctx, question, blob)
		return serr
	})
	if err != nil {
		p.logger.Error("chat request failed", map[string]interface{}{
			"error": err.Error(),
			"code":  string(apperrors.CodeOf(err)),
		})
		return nil, err
	}

	p.logger.Info("chat request answered", map[string]interface{}{
		"intent":     string(analysis.Intent),
		"categories": len(analysis.Categories),
		"fetched":    len(fanOut.Sources),
		"sources":    len(bundle.Sources),
		"dataPoints": bundle.DataPoints,
	})

	return models.NewChatSuccess(answer, bundle.Sources, bundle.DataPoints), nil
}

func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	status := "ok"
	if err != nil {
		status = "error"
	}
	p.obs.RecordStage(ctx, name, time.Since(start), status)
	return err
}
