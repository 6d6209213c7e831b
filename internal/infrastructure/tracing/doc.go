// Package tracing provides distributed tracing spans for upstream calls.
//
// The tracer is constructed once from config and injected into consumers;
// there is no package-level global. When tracing is disabled, StartSpan
// returns a nil span and every span operation is a safe no-op, so call
// sites never need to branch on enablement.
//
// Completed spans are submitted to a buffered channel and drained by a
// collector goroutine that logs them as structured zap entries; a full
// buffer drops spans rather than blocking the caller.
//
// Example Usage:
//
//	tracer := tracing.New(tracing.Config{ServiceName: "stars-mcp", Enabled: true}, logger)
//	span, ctx := tracer.StartSpan(ctx, "createContribution", map[string]string{"operation": "createContribution"})
//	defer span.End()
//	tracer.AddEvent(span, "graphql_success", nil)
package tracing
