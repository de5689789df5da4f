package obs

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestInitTracer_WithoutEndpointStillTraces(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "salon-test", "", "test")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	if !span.SpanContext().TraceID().IsValid() {
		t.Fatalf("expected a valid trace id")
	}
}
