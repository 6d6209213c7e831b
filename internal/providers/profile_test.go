package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserData(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"loggedUser": {"username": "octocat", "nominee": {"status": "STAR"}}}}`))
	})
	p := env.profile()

	result, err := p.Execute(context.Background(), "stars.getUserData", nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	user := result.Data["loggedUser"].(map[string]interface{})
	assert.Equal(t, "octocat", user["username"])
}

func TestGetUserNullLoggedUserIsSuccess(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"loggedUser": null}}`))
	})
	p := env.profile()

	result, err := p.Execute(context.Background(), "stars.getUser", nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Nil(t, result.Data["loggedUser"])
}

func TestGetStarsRequiresUsername(t *testing.T) {
	env := newTestEnv(t, nil)
	p := env.profile()

	result, err := p.Execute(context.Background(), "stars.getStars", nil)
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage(), "username parameter required")
	assert.Equal(t, 0, env.hits)
}

func TestUpdateProfileSendsOnlyProvidedFields(t *testing.T) {
	var payload map[string]interface{}
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		w.Write([]byte(`{"data": {"updateProfile": {"id": "u1"}}}`))
	})
	p := env.profile()

	result, err := p.Execute(context.Background(), "stars.updateProfile", map[string]interface{}{
		"bio":     "Gopher",
		"company": "ACME",
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	variables := payload["variables"].(map[string]interface{})
	data := variables["data"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"bio": "Gopher", "company": "ACME"}, data)
}

func TestUpdateProfileDropsUnknownFields(t *testing.T) {
	var payload map[string]interface{}
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		w.Write([]byte(`{"data": {"updateProfile": {"id": "u1"}}}`))
	})
	p := env.profile()

	result, err := p.Execute(context.Background(), "stars.updateProfile", map[string]interface{}{
		"bio":      "Gopher",
		"username": "not-a-profile-field",
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	variables := payload["variables"].(map[string]interface{})
	data := variables["data"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"bio": "Gopher"}, data)
}

func TestUpdateProfileRejectsNonStringField(t *testing.T) {
	env := newTestEnv(t, nil)
	p := env.profile()

	result, err := p.Execute(context.Background(), "stars.updateProfile", map[string]interface{}{
		"bio": 42,
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage(), "invalid profile fields")
	assert.Equal(t, 0, env.hits)
}

func TestUpdateProfileRequiresFields(t *testing.T) {
	env := newTestEnv(t, nil)
	p := env.profile()

	result, err := p.Execute(context.Background(), "stars.updateProfile", map[string]interface{}{})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, "no fields to update", result.ErrorMessage())
	assert.Equal(t, 0, env.hits)
}
