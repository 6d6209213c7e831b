package stars

import (
	"context"
	"errors"

	"github.com/svg153/github-stars-contrib-mcp-server/internal/types"
)

// Adapter unwraps Result envelopes into (data, error) pairs for the
// tool layer.
type Adapter struct {
	client *Client
}

// NewAdapter creates an adapter over the given client
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

// unwrap converts a failure Result into an error carrying its message
func (a *Adapter) unwrap(result *types.Result, err error) (map[string]interface{}, error) {
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, errors.New(result.ErrorMessage())
	}
	return result.Data, nil
}

// CreateContribution creates a single contribution
func (a *Adapter) CreateContribution(ctx context.Context, input types.ContributionInput) (map[string]interface{}, error) {
	return a.unwrap(a.client.CreateContribution(ctx, input))
}

// CreateContributions creates multiple contributions; data carries "ids"
func (a *Adapter) CreateContributions(ctx context.Context, items []map[string]interface{}) (map[string]interface{}, error) {
	return a.unwrap(a.client.CreateContributions(ctx, items))
}

// UpdateContribution updates a contribution
func (a *Adapter) UpdateContribution(ctx context.Context, id string, data map[string]interface{}) (map[string]interface{}, error) {
	return a.unwrap(a.client.UpdateContribution(ctx, id, data))
}

// DeleteContribution deletes a contribution
func (a *Adapter) DeleteContribution(ctx context.Context, id string) (map[string]interface{}, error) {
	return a.unwrap(a.client.DeleteContribution(ctx, id))
}

// CreateLink adds a profile link
func (a *Adapter) CreateLink(ctx context.Context, link string, platform types.PlatformType) (map[string]interface{}, error) {
	return a.unwrap(a.client.CreateLink(ctx, link, platform))
}

// UpdateLink updates a profile link
func (a *Adapter) UpdateLink(ctx context.Context, id, link string, platform types.PlatformType) (map[string]interface{}, error) {
	return a.unwrap(a.client.UpdateLink(ctx, id, link, platform))
}

// DeleteLink deletes a profile link
func (a *Adapter) DeleteLink(ctx context.Context, id string) (map[string]interface{}, error) {
	return a.unwrap(a.client.DeleteLink(ctx, id))
}

// GetUserData fetches the logged user's full profile
func (a *Adapter) GetUserData(ctx context.Context) (map[string]interface{}, error) {
	return a.unwrap(a.client.GetUserData(ctx))
}

// GetUser fetches the logged user including nomination status
func (a *Adapter) GetUser(ctx context.Context) (map[string]interface{}, error) {
	return a.unwrap(a.client.GetUser(ctx))
}

// GetStars fetches public contributions for a username
func (a *Adapter) GetStars(ctx context.Context, username string) (map[string]interface{}, error) {
	return a.unwrap(a.client.GetStars(ctx, username))
}

// UpdateProfile updates profile fields
func (a *Adapter) UpdateProfile(ctx context.Context, data map[string]interface{}) (map[string]interface{}, error) {
	return a.unwrap(a.client.UpdateProfile(ctx, data))
}
