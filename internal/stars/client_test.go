package stars

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/config"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/monitoring"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/resilience"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/tracing"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/types"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, url string, breaker *resilience.Breaker) *Client {
	t.Helper()

	cfg := config.Default()
	cfg.Stars.APIURL = url
	cfg.Stars.Token = "test-token"
	cfg.Retry.WaitMin = time.Millisecond
	cfg.Retry.WaitMax = 5 * time.Millisecond

	if breaker == nil {
		breaker = resilience.New(BreakerName, resilience.Settings{})
	}

	tracer := tracing.New(tracing.Config{Enabled: false}, zap.NewNop())
	return New(cfg, breaker, monitoring.NewMetrics(), tracer, zap.NewNop())
}

func TestExecuteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"loggedUser": {"username": "octocat"}}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	result, err := c.Execute(context.Background(), userDataQuery, nil, "getUserData")
	require.NoError(t, err)
	require.True(t, result.Success)

	user, ok := result.Data["loggedUser"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "octocat", user["username"])
}

func TestExecuteEmptyDataIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	result, err := c.Execute(context.Background(), userQuery, nil, "getUser")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotNil(t, result.Data)
}

func TestExecuteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	result, err := c.Execute(context.Background(), userDataQuery, nil, "getUserData")
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage(), "404")
	assert.Contains(t, result.ErrorMessage(), "not found")
}

func TestExecuteGraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [{"message": "boom"}, {"message": "second"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	result, err := c.Execute(context.Background(), userDataQuery, nil, "getUserData")
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, "boom", result.ErrorMessage())
}

func TestExecuteGraphQLErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [{}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	result, err := c.Execute(context.Background(), userDataQuery, nil, "getUserData")
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, "Unknown error", result.ErrorMessage())
}

func TestExecuteInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	result, err := c.Execute(context.Background(), userDataQuery, nil, "getUserData")
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, "Invalid JSON response", result.ErrorMessage())
}

func TestExecuteOpenBreakerRejectsWithoutCalling(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"data": {}}`))
	}))
	defer srv.Close()

	breaker := resilience.New(BreakerName, resilience.Settings{
		FailureThreshold: 1,
		RecoveryTimeout:  time.Hour,
	})
	_, err := breaker.Execute(func() (interface{}, error) {
		return nil, errors.New("forced failure")
	})
	require.Error(t, err)
	require.Equal(t, resilience.StateOpen, breaker.State())

	c := newTestClient(t, srv.URL, breaker)
	result, err := c.Execute(context.Background(), userDataQuery, nil, "getUserData")
	require.NoError(t, err)
	require.False(t, result.Success)

	// Failure message is generic, no breaker internals leak
	assert.Contains(t, result.ErrorMessage(), "temporarily unavailable")
	assert.NotContains(t, result.ErrorMessage(), "breaker")
	assert.Equal(t, int64(0), hits.Load())
}

func TestExecuteTransportFailureRetriesThenErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url, nil)
	result, err := c.Execute(context.Background(), userDataQuery, nil, "getUserData")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestExecuteContextCancellationStopsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(t, url, nil)
	_, err := c.Execute(ctx, userDataQuery, nil, "getUserData")
	require.Error(t, err)
}

func TestExecuteSendsWireContract(t *testing.T) {
	var captured struct {
		payload map[string]interface{}
		header  http.Header
		cookie  string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.header = r.Header.Clone()
		if cookie, err := r.Cookie("token"); err == nil {
			captured.cookie = cookie.Value
		}
		json.NewDecoder(r.Body).Decode(&captured.payload)
		w.Write([]byte(`{"data": {}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	_, err := c.GetStars(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "application/json", captured.header.Get("Content-Type"))
	assert.Equal(t, "*/*", captured.header.Get("Accept"))
	assert.Equal(t, "https://stars.github.com", captured.header.Get("Origin"))
	assert.Equal(t, "https://stars.github.com/", captured.header.Get("Referer"))
	assert.Equal(t, "Bearer test-token", captured.header.Get("Authorization"))
	assert.Contains(t, captured.header.Get("User-Agent"), "Safari")
	assert.Equal(t, "test-token", captured.cookie)

	assert.Contains(t, captured.payload["query"], "query GetStars")
	variables, ok := captured.payload["variables"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "octocat", variables["username"])
}

func TestCreateContributionsCollectsIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"createContributions": [{"id": "c1"}, null, {"id": "c2"}, {"__typename": "Contribution"}]}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	result, err := c.CreateContributions(context.Background(), []map[string]interface{}{
		{"type": "SPEAKING", "date": "2026-01-15", "title": "Talk", "url": "https://example.com", "description": "d"},
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, []interface{}{"c1", "c2"}, result.Data["ids"])
}

func TestCreateContributionBuildsVariables(t *testing.T) {
	var payload map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		w.Write([]byte(`{"data": {"createContribution": {"id": "c1"}}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	_, err := c.CreateContribution(context.Background(), types.ContributionInput{
		Type:        types.ContributionSpeaking,
		Date:        "2026-01-15",
		Title:       "Talk",
		URL:         "https://example.com/talk",
		Description: "conference talk",
	})
	require.NoError(t, err)

	variables := payload["variables"].(map[string]interface{})
	data := variables["data"].(map[string]interface{})
	assert.Equal(t, "SPEAKING", data["type"])
	assert.Equal(t, "2026-01-15", data["date"])
	assert.Equal(t, "Talk", data["title"])
}

func TestTrailingSlashNormalized(t *testing.T) {
	c := newTestClient(t, "https://api-stars.github.com", nil)
	assert.Equal(t, "https://api-stars.github.com/", c.apiURL)

	c = newTestClient(t, "https://api-stars.github.com///", nil)
	assert.Equal(t, "https://api-stars.github.com/", c.apiURL)
}
