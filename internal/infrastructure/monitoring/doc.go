// Package monitoring provides Prometheus metrics collection for the server.
//
// All metrics register into a per-instance collector registry, so tests can
// construct as many Metrics values as they need without duplicate
// registration panics.
//
// Metric families:
//   - mcp_requests_total, mcp_request_latency_seconds,
//     mcp_request_size_bytes, mcp_response_size_bytes
//   - mcp_errors_total, mcp_retries_total
//   - mcp_circuit_breaker_state, mcp_circuit_breaker_failures
//   - mcp_contributions_created_total, mcp_contributions_updated_total,
//     mcp_contributions_deleted_total
//   - mcp_cache_hits_total, mcp_cache_misses_total, mcp_cache_size_bytes
//
// Recording methods are fire-and-forget: they never return an error and
// never panic on valid string labels and non-negative numeric values.
package monitoring
