package tracing

import (
	"context"
	"sync"
	"time"

	"github.com/svg153/github-stars-contrib-mcp-server/internal/shared/id"
	"go.uber.org/zap"
)

// Config holds tracer configuration
type Config struct {
	// ServiceName identifies this process in span output
	ServiceName string
	// Endpoint is the collector address spans would be shipped to
	Endpoint string
	// Enabled turns span production on; when false all operations are no-ops
	Enabled bool
}

// Event represents a timestamped named event within a span
type Event struct {
	Timestamp  time.Time
	Name       string
	Attributes map[string]interface{}
}

// Span represents a single traced operation
type Span struct {
	TraceID    id.TraceID
	SpanID     id.SpanID
	ParentID   id.SpanID
	Name       string
	Service    string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Attributes map[string]string
	Events     []Event
	Err        error

	tracer *Tracer
	mu     sync.Mutex
	ended  bool
}

// Tracer manages span creation and collection
type Tracer struct {
	config Config
	logger *zap.Logger

	spans    chan *Span
	quit     chan struct{}
	done     chan struct{}
	shutdown sync.Once
}

// New creates a tracer. A disabled tracer starts no collector goroutine
// and yields nil spans.
func New(config Config, logger *zap.Logger) *Tracer {
	t := &Tracer{
		config: config,
		logger: logger,
	}

	if config.Enabled {
		t.spans = make(chan *Span, 1000)
		t.quit = make(chan struct{})
		t.done = make(chan struct{})
		go t.collectSpans()

		logger.Info("tracing initialized",
			zap.String("service", config.ServiceName),
			zap.String("endpoint", config.Endpoint),
		)
	}

	return t
}

// Enabled reports whether span production is active
func (t *Tracer) Enabled() bool {
	return t.config.Enabled
}

// StartSpan creates a new span. Returns nil when tracing is disabled;
// all operations on a nil span are no-ops.
func (t *Tracer) StartSpan(ctx context.Context, name string, attributes map[string]string) (*Span, context.Context) {
	if !t.config.Enabled {
		return nil, ctx
	}

	traceID, _ := ctx.Value(traceIDKey).(id.TraceID)
	if traceID == "" {
		traceID = id.NewTraceID()
	}
	parentID, _ := ctx.Value(spanIDKey).(id.SpanID)

	span := &Span{
		TraceID:    traceID,
		SpanID:     id.NewSpanID(),
		ParentID:   parentID,
		Name:       name,
		Service:    t.config.ServiceName,
		StartTime:  time.Now(),
		Attributes: make(map[string]string),
		Events:     []Event{},
		tracer:     t,
	}
	for k, v := range attributes {
		span.Attributes[k] = v
	}

	newCtx := context.WithValue(ctx, traceIDKey, traceID)
	newCtx = context.WithValue(newCtx, spanIDKey, span.SpanID)

	return span, newCtx
}

// AddEvent attaches a timestamped event to a span; no-op for nil spans
func (t *Tracer) AddEvent(span *Span, name string, attributes map[string]interface{}) {
	span.AddEvent(name, attributes)
}

// SetAttribute sets a span attribute; safe on nil spans
func (s *Span) SetAttribute(key, value string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Attributes[key] = value
}

// SetError records an error on the span; safe on nil spans
func (s *Span) SetError(err error) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Err = err
}

// AddEvent appends a timestamped event; safe on nil spans
func (s *Span) AddEvent(name string, attributes map[string]interface{}) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, Event{
		Timestamp:  time.Now(),
		Name:       name,
		Attributes: attributes,
	})
}

// End completes the span and submits it to the collector. Safe on nil
// spans and idempotent, so it can sit in a defer on every exit path.
func (s *Span) End() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
	s.mu.Unlock()

	s.tracer.submit(s)
}

// submit sends a span to the collector, dropping when the buffer is full
// or the tracer is shutting down
func (t *Tracer) submit(span *Span) {
	select {
	case <-t.quit:
		return
	default:
	}

	select {
	case t.spans <- span:
	default:
		t.logger.Warn("span buffer full, dropping span",
			zap.String("trace_id", string(span.TraceID)),
			zap.String("span_id", string(span.SpanID)),
		)
	}
}

// collectSpans processes completed spans until shutdown, then drains
// whatever is still buffered
func (t *Tracer) collectSpans() {
	defer close(t.done)

	for {
		select {
		case span := <-t.spans:
			t.processSpan(span)
		case <-t.quit:
			for {
				select {
				case span := <-t.spans:
					t.processSpan(span)
				default:
					return
				}
			}
		}
	}
}

// processSpan logs span data
func (t *Tracer) processSpan(span *Span) {
	fields := []zap.Field{
		zap.String("trace_id", string(span.TraceID)),
		zap.String("span_id", string(span.SpanID)),
		zap.String("operation", span.Name),
		zap.Duration("duration", span.Duration),
		zap.String("service", span.Service),
		zap.Int("events", len(span.Events)),
	}

	if span.ParentID != "" {
		fields = append(fields, zap.String("parent_id", string(span.ParentID)))
	}

	if span.Err != nil {
		fields = append(fields, zap.Error(span.Err))
		t.logger.Error("span completed with error", fields...)
	} else {
		t.logger.Info("span completed", fields...)
	}
}

// Shutdown flushes buffered spans and stops the collector. Safe to call
// multiple times; a no-op when tracing was never enabled.
func (t *Tracer) Shutdown() {
	if !t.config.Enabled {
		return
	}
	t.shutdown.Do(func() {
		close(t.quit)
		<-t.done
		t.logger.Info("tracing shutdown", zap.String("service", t.config.ServiceName))
	})
}

// Context keys for trace propagation
type contextKey string

const (
	traceIDKey contextKey = "trace_id"
	spanIDKey  contextKey = "span_id"
)

// GetTraceID retrieves the trace ID from context
func GetTraceID(ctx context.Context) id.TraceID {
	if traceID, ok := ctx.Value(traceIDKey).(id.TraceID); ok {
		return traceID
	}
	return ""
}

// GetSpanID retrieves the span ID from context
func GetSpanID(ctx context.Context) id.SpanID {
	if spanID, ok := ctx.Value(spanIDKey).(id.SpanID); ok {
		return spanID
	}
	return ""
}
