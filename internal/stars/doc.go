// Package stars talks to the GitHub Stars GraphQL API.
//
// Client is the single upstream executor: every operation goes through
// Execute, which layers retries with jittered backoff around a named
// circuit breaker, records request/error/retry metrics, and emits one
// trace span per operation. GraphQL-level failures (HTTP status errors,
// undecodable bodies, errors arrays) come back as failure Results, never
// as Go errors; only transport failures are retried and surface as
// errors once attempts are exhausted.
//
// Adapter sits on top for the tool layer, unwrapping Results into
// (data, error) pairs.
package stars
