package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/svg153/github-stars-contrib-mcp-server/internal/config"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/monitoring"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/resilience"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/tracing"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/stars"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/utils/urlcheck"
	"go.uber.org/zap"
)

// publicProfileResponse is a canned GetStars payload used by the
// search/export/stats tests
const publicProfileResponse = `{"data": {"publicProfile": {"username": "octocat", "contributions": [
	{"id": "c1", "type": "SPEAKING", "date": "2026-01-15T00:00:00Z", "title": "GopherCon Talk", "url": "https://example.com/talk", "description": "talk"},
	{"id": "c2", "type": "BLOGPOST", "date": "2025-11-02T00:00:00Z", "title": "Writing Servers", "url": "https://example.com/post", "description": "post"},
	{"id": "c3", "type": "SPEAKING", "date": "2024-06-10T00:00:00Z", "title": "Meetup Intro", "url": "https://example.com/meetup", "description": "m"}
]}}}`

type testEnv struct {
	adapter *stars.Adapter
	metrics *monitoring.Metrics
	checker *urlcheck.Checker
	hits    int
}

// newTestEnv wires an adapter against a stubbed upstream. The handler
// may be nil for tests that never reach the API.
func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()

	env := &testEnv{metrics: monitoring.NewMetrics()}

	wrapped := func(w http.ResponseWriter, r *http.Request) {
		env.hits++
		if handler != nil {
			handler(w, r)
			return
		}
		w.Write([]byte(`{"data": {}}`))
	}
	srv := httptest.NewServer(http.HandlerFunc(wrapped))
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.Stars.APIURL = srv.URL
	cfg.Retry.WaitMin = time.Millisecond
	cfg.Retry.WaitMax = 2 * time.Millisecond

	breaker := resilience.New(stars.BreakerName, resilience.Settings{})
	tracer := tracing.New(tracing.Config{Enabled: false}, zap.NewNop())
	client := stars.New(cfg, breaker, env.metrics, tracer, zap.NewNop())

	env.adapter = stars.NewAdapter(client)
	env.checker = urlcheck.New(config.URLCheckConfig{Enabled: false}, env.metrics, zap.NewNop())
	return env
}

func (e *testEnv) contributions() *Contributions {
	return NewContributions(e.adapter, e.metrics, e.checker, zap.NewNop())
}

func (e *testEnv) links() *Links {
	return NewLinks(e.adapter, e.checker, zap.NewNop())
}

func (e *testEnv) profile() *Profile {
	return NewProfile(e.adapter, zap.NewNop())
}
