// internal/common/observability/observability_test.go
package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRecordStage_NilSafe(t *testing.T) {
	var o *Observability
	assert.NotPanics(t, func() {
		o.RecordStage(context.Background(), "classify", time.Millisecond, "ok")
		o.RecordContextSize(context.Background(), 10)
	})

	empty := &Observability{}
	assert.NotPanics(t, func() {
		empty.RecordStage(context.Background(), "classify", time.Millisecond, "ok")
		empty.Shutdown()
	})
}

func TestStartSpan_RecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartSpan(context.Background(), "chat.synthesize")
	EndSpan(span, errors.New("boom"))

	ended := recorder.Ended()
	if assert.Len(t, ended, 1) {
		assert.Equal(t, "chat.synthesize", ended[0].Name())
		assert.Equal(t, "boom", ended[0].Status().Description)
	}
}
