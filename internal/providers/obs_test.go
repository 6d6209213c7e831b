package providers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/monitoring"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/resilience"
)

func TestMetricsToolExposition(t *testing.T) {
	metrics := monitoring.NewMetrics()
	metrics.RecordError("HTTP_500", "/graphql/getUser")

	breakers := resilience.NewRegistry()
	breakers.GetOrCreate("stars-api", resilience.Settings{})

	p := NewObservability(metrics, breakers)
	result, err := p.Execute(context.Background(), "stars.metrics", nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	text := result.Data["metrics"].(string)
	assert.Contains(t, text, "mcp_errors_total")
	assert.Contains(t, text, "# stars-api: closed (failures: 0)")
}

func TestMetricsToolUnknownTool(t *testing.T) {
	p := NewObservability(monitoring.NewMetrics(), resilience.NewRegistry())

	result, err := p.Execute(context.Background(), "stars.other", nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestExpositionSortsBreakerComments(t *testing.T) {
	metrics := monitoring.NewMetrics()
	breakers := resilience.NewRegistry()
	breakers.GetOrCreate("b-second", resilience.Settings{})
	breakers.GetOrCreate("a-first", resilience.Settings{})

	text, err := Exposition(metrics, breakers)
	require.NoError(t, err)

	first := "# a-first: closed (failures: 0)"
	second := "# b-second: closed (failures: 0)"
	assert.Contains(t, text, first)
	assert.Contains(t, text, second)
	assert.Less(t, strings.Index(text, first), strings.Index(text, second))
}
