package telemetry

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope used for polls spans.
const TracerName = "go-polls"

// Tracer returns t or the global polls tracer when t is nil.
func Tracer(t trace.Tracer) trace.Tracer {
	if t != nil {
		return t
	}
	return otel.Tracer(TracerName)
}

// StartQuestionSpan opens a span tagged with the question id.
func StartQuestionSpan(ctx context.Context, tracer trace.Tracer, name string, questionID uuid.UUID) (context.Context, trace.Span) {
	ctx, span := Tracer(tracer).Start(ctx, name)
	span.SetAttributes(attribute.String("polls.question_id", questionID.String()))
	return ctx, span
}

// SetKind tags the span with the question aggregation kind.
func SetKind(span trace.Span, kind string) {
	span.SetAttributes(attribute.String("polls.question_kind", kind))
}

// EndSpan records err on the span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
