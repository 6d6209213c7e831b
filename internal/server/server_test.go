package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/config"
)

func newTestServer(t *testing.T, upstream string) *Server {
	t.Helper()

	cfg := config.Default()
	if upstream != "" {
		cfg.Stars.APIURL = upstream
	}
	cfg.Retry.WaitMin = time.Millisecond
	cfg.Retry.WaitMax = 2 * time.Millisecond

	srv, err := New(cfg)
	require.NoError(t, err)
	return srv
}

func doRequest(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestRootEndpoint(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, "github-stars-contrib-mcp-server", body["service"])

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])

	breakers := body["circuit_breakers"].(map[string]interface{})
	require.Contains(t, breakers, "stars-api")
	snap := breakers["stars-api"].(map[string]interface{})
	assert.Equal(t, "closed", snap["state"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "# stars-api: closed (failures: 0)")
}

func TestListServices(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodGet, "/services", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Services []struct {
			ID    string `json:"id"`
			Tools []struct {
				ID string `json:"id"`
			} `json:"tools"`
		} `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Services, 4)

	ids := map[string]bool{}
	toolCount := 0
	for _, svc := range body.Services {
		ids[svc.ID] = true
		toolCount += len(svc.Tools)
	}
	assert.True(t, ids["contributions"])
	assert.True(t, ids["links"])
	assert.True(t, ids["profile"])
	assert.True(t, ids["observability"])
	assert.Equal(t, 16, toolCount)
}

func TestListServicesByCategory(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodGet, "/services?category=links", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Services []struct {
			ID string `json:"id"`
		} `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Services, 1)
	assert.Equal(t, "links", body.Services[0].ID)
}

func TestExecuteRequiresToolID(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodPost, "/services/execute", `{"params": {}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteUnknownTool(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodPost, "/services/execute", `{"tool_id": "stars.nope"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestExecuteGetStarsEndToEnd(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"publicProfile": {"username": "octocat", "contributions": []}}}`))
	}))
	defer upstream.Close()

	srv := newTestServer(t, upstream.URL)

	w := doRequest(srv, http.MethodPost, "/services/execute",
		`{"tool_id": "stars.getStars", "params": {"username": "octocat"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	profile := data["publicProfile"].(map[string]interface{})
	assert.Equal(t, "octocat", profile["username"])
}

func TestExecuteValidationFailureIsOK(t *testing.T) {
	srv := newTestServer(t, "")

	// Tool-level validation failures keep HTTP 200 with a failure Result
	w := doRequest(srv, http.MethodPost, "/services/execute",
		`{"tool_id": "stars.createContribution", "params": {"title": "only a title"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "required")
}
