package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer for feed assembly spans.
var tracer = otel.Tracer("feedrank")

// GetTracer returns the global tracer for creating spans.
func GetTracer() trace.Tracer {
	return tracer
}

// StartFeedSpan starts a span covering one feed assembly and tags it with the
// tenant and user. The caller must end the returned span.
func StartFeedSpan(ctx context.Context, tenantID, userID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "feed.assemble",
		trace.WithAttributes(
			attribute.String("feed.tenant_id", tenantID),
			attribute.String("feed.user_id", userID),
		))
}

// MarkDegraded tags the span as a fallback response with its reason.
func MarkDegraded(span trace.Span, reason string) {
	span.SetAttributes(
		attribute.Bool("feed.degraded", true),
		attribute.String("feed.fallback_reason", reason),
	)
}
