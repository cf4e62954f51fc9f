// internal/common/observability/metrics.go
package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	stageCounter  otelmetric.Int64Counter
	stageDuration otelmetric.Float64Histogram
	contextSize   otelmetric.Int64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	stageCounter, _ := meter.Int64Counter(
		"pipeline.stages",
		otelmetric.WithDescription("Number of pipeline stages executed"),
	)

	stageDuration, _ := meter.Float64Histogram(
		"pipeline.stage.duration",
		otelmetric.WithDescription("Pipeline stage duration"),
		otelmetric.WithUnit("ms"),
	)

	contextSize, _ := meter.Int64Histogram(
		"pipeline.context.bytes",
		otelmetric.WithDescription("Size of the context blob sent to the model"),
		otelmetric.WithUnit("By"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		stageCounter:  stageCounter,
		stageDuration: stageDuration,
		contextSize:   contextSize,
	}
}

// RecordStage counts one pipeline stage and its duration. Safe on a nil receiver.
func (o *Observability) RecordStage(ctx context.Context, stage string, duration time.Duration, status string) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("status", status),
	)
	if o.stageCounter != nil {
		o.stageCounter.Add(ctx, 1, attrs)
	}
	if o.stageDuration != nil {
		o.stageDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) RecordContextSize(ctx context.Context, bytes int) {
	if o == nil || o.contextSize == nil {
		return
	}
	o.contextSize.Record(ctx, int64(bytes))
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
