package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

const tracerName = "evidence-collectors"

// Tracing decorates a collector with an OpenTelemetry span around each
// execution, recording the category, inputs presence, and outcome.
func Tracing() ports.Middleware {
	return func(next ports.Collector) ports.Collector {
		return &tracingCollector{next: next}
	}
}

type tracingCollector struct {
	next ports.Collector
}

func (c *tracingCollector) ID() domain.CollectorID { return c.next.ID() }

func (c *tracingCollector) Timeout() time.Duration { return c.next.Timeout() }

func (c *tracingCollector) Execute(ctx context.Context, subject, condition string) (domain.CategoryEvidence, error) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "Collector.Execute",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("collector.id", string(c.next.ID())),
		attribute.Bool("collector.has_subject", subject != ""),
		attribute.Bool("collector.has_condition", condition != ""),
	)

	evidence, err := c.next.Execute(ctx, subject, condition)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return evidence, nil
}
