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
	meterProvider       *metric.MeterProvider
	meter               otelmetric.Meter
	interactionCounter  otelmetric.Int64Counter
	interactionDuration otelmetric.Float64Histogram
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

	interactionCounter, _ := meter.Int64Counter(
		"interactions.processed",
		otelmetric.WithDescription("Number of chat interactions processed"),
	)

	interactionDuration, _ := meter.Float64Histogram(
		"interactions.duration",
		otelmetric.WithDescription("Interaction handling duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:       provider,
		meter:               meter,
		interactionCounter:  interactionCounter,
		interactionDuration: interactionDuration,
	}
}

func (o *Observability) RecordInteraction(ctx context.Context, handler, status string) {
	if o.interactionCounter != nil {
		o.interactionCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("handler", handler),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordInteractionDuration(ctx context.Context, duration time.Duration, handler string) {
	if o.interactionDuration != nil {
		o.interactionDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("handler", handler),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
