package infrastructure

import "context"

// traceIDKey carries the correlation ID every log line of a request reports.
type traceIDKey struct{}

// WithTraceID stores the correlation ID on ctx.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// GetTraceID returns the correlation ID on ctx, or "".
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}

// CorrelateRequest picks the ID that logs and problem responses report for a
// request: the active span's trace ID when there is one, otherwise requestID.
func CorrelateRequest(ctx context.Context, requestID string) context.Context {
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		return WithTraceID(ctx, traceID)
	}
	return WithTraceID(ctx, requestID)
}
