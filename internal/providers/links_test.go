package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLinkSuccess(t *testing.T) {
	var payload map[string]interface{}
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		w.Write([]byte(`{"data": {"createLink": {"id": "l1"}}}`))
	})
	p := env.links()

	result, err := p.Execute(context.Background(), "stars.createLink", map[string]interface{}{
		"link":     "https://dev.to/octocat",
		"platform": "dev_to",
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	variables := payload["variables"].(map[string]interface{})
	assert.Equal(t, "https://dev.to/octocat", variables["link"])
	assert.Equal(t, "DEV_TO", variables["platform"])
}

func TestCreateLinkRejectsRemovedPlatforms(t *testing.T) {
	env := newTestEnv(t, nil)
	p := env.links()

	// GITHUB and WEBSITE were dropped from the upstream enum
	for _, platform := range []string{"GITHUB", "WEBSITE"} {
		result, err := p.Execute(context.Background(), "stars.createLink", map[string]interface{}{
			"link":     "https://example.com",
			"platform": platform,
		})
		require.NoError(t, err)
		require.False(t, result.Success)
		assert.Contains(t, result.ErrorMessage(), "invalid platform type")
	}
	assert.Equal(t, 0, env.hits)
}

func TestCreateLinkRequiresLink(t *testing.T) {
	env := newTestEnv(t, nil)
	p := env.links()

	result, err := p.Execute(context.Background(), "stars.createLink", map[string]interface{}{
		"platform": "TWITTER",
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage(), "link parameter required")
}

func TestUpdateLinkRequiresID(t *testing.T) {
	env := newTestEnv(t, nil)
	p := env.links()

	result, err := p.Execute(context.Background(), "stars.updateLink", map[string]interface{}{
		"link":     "https://example.com",
		"platform": "TWITTER",
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage(), "id parameter required")
}

func TestDeleteLink(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"deleteLink": {"id": "l1"}}}`))
	})
	p := env.links()

	result, err := p.Execute(context.Background(), "stars.deleteLink", map[string]interface{}{"id": "l1"})
	require.NoError(t, err)
	require.True(t, result.Success)
}

func TestLinksUpstreamFailureBecomesResult(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [{"message": "link already exists"}]}`))
	})
	p := env.links()

	result, err := p.Execute(context.Background(), "stars.deleteLink", map[string]interface{}{"id": "l1"})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, "link already exists", result.ErrorMessage())
}
