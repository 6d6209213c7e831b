// Package id provides centralized ID generation for the server.
//
// ULIDs are used as the single ID format: lexicographically sortable,
// unique across services, and readable in logs thanks to type prefixes
// (req_*, trace_*, span_*).
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/oklog/ulid/v2"
)

// RequestID identifies an API request
type RequestID string

// TraceID identifies a distributed trace
type TraceID string

// SpanID identifies a span within a trace
type SpanID string

const (
	requestPrefix = "req"
	tracePrefix   = "trace"
	spanPrefix    = "span"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

func getGenerator() *Generator {
	once.Do(func() {
		defaultGenerator = &Generator{entropy: rand.Reader}
	})
	return defaultGenerator
}

// newULID generates a prefixed ULID string
func (g *Generator) newULID(prefix string) string {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()
	return fmt.Sprintf("%s_%s", prefix, ulid.MustNew(ulid.Now(), g.entropy).String())
}

// NewRequestID generates a unique request ID
func NewRequestID() RequestID {
	return RequestID(getGenerator().newULID(requestPrefix))
}

// NewTraceID generates a unique trace ID
func NewTraceID() TraceID {
	return TraceID(getGenerator().newULID(tracePrefix))
}

// NewSpanID generates a unique span ID
func NewSpanID() SpanID {
	return SpanID(getGenerator().newULID(spanPrefix))
}
