package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "haiku-server/api"
)

// GetTracer returns the tracer for the haiku service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartGenerationSpan starts a span for one provider call.
func StartGenerationSpan(ctx context.Context, chainID, name, model string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "generation.call",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("generation.chain_id", chainID),
			attribute.String("generation.name", name),
			attribute.String("generation.model", model),
		),
	)
}

// StartTaskSpan starts a span for one background task execution.
func StartTaskSpan(ctx context.Context, taskID, kind string, projectID uint) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "task.execute."+kind,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("task.id", taskID),
			attribute.String("task.kind", kind),
			attribute.Int64("task.project_id", int64(projectID)),
		),
	)
}

// StartPushSpan starts a span for one dashboard push.
func StartPushSpan(ctx context.Context, projectID uint) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "dashboard.push",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.Int64("project.id", int64(projectID)),
		),
	)
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
