package providers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/monitoring"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/resilience"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/types"
)

// Observability exposes the metrics exposition as a tool
type Observability struct {
	metrics  *monitoring.Metrics
	breakers *resilience.Registry
}

// NewObservability creates the observability provider
func NewObservability(metrics *monitoring.Metrics, breakers *resilience.Registry) *Observability {
	return &Observability{
		metrics:  metrics,
		breakers: breakers,
	}
}

// Definition returns service metadata
func (p *Observability) Definition() types.Service {
	return types.Service{
		ID:          "observability",
		Name:        "Observability",
		Description: "Server metrics and circuit breaker state",
		Category:    types.CategoryObservability,
		Capabilities: []string{
			"prometheus_metrics",
			"breaker_state",
		},
		Tools: []types.Tool{
			{
				ID:          "stars.metrics",
				Name:        "Metrics",
				Description: "Prometheus text exposition with circuit breaker state comments",
				Returns:     "object",
			},
		},
	}
}

// Execute dispatches an observability tool
func (p *Observability) Execute(_ context.Context, toolID string, _ map[string]interface{}) (*types.Result, error) {
	switch toolID {
	case "stars.metrics":
		return p.exposition()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Observability) exposition() (*types.Result, error) {
	text, err := Exposition(p.metrics, p.breakers)
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"metrics": text})
}

// Exposition renders the metrics text format with breaker states
// appended as comment lines. Shared with the /metrics HTTP handler.
func Exposition(metrics *monitoring.Metrics, breakers *resilience.Registry) (string, error) {
	out, err := metrics.Export()
	if err != nil {
		return "", err
	}

	states := breakers.AllStates()
	names := make([]string, 0, len(states))
	for name := range states {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	builder.Write(out)
	for _, name := range names {
		snap := states[name]
		builder.WriteString(fmt.Sprintf("# %s: %s (failures: %d)\n", name, snap.State, snap.FailureCount))
	}
	return builder.String(), nil
}
