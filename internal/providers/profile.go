package providers

import (
	"context"
	"fmt"

	"github.com/svg153/github-stars-contrib-mcp-server/internal/stars"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/types"
	"go.uber.org/zap"
)

// profileFields are the updatable NomineeProfileInput keys, passed
// through as-is when present
var profileFields = []string{
	"avatar", "name", "bio", "country", "birthdate", "reason",
	"jobTitle", "company", "phoneNumber", "address", "state", "city", "zipcode",
}

// Profile provides read and update tools over the logged user's profile
type Profile struct {
	adapter *stars.Adapter
	logger  *zap.Logger
}

// NewProfile creates the profile provider
func NewProfile(adapter *stars.Adapter, logger *zap.Logger) *Profile {
	return &Profile{
		adapter: adapter,
		logger:  logger.Named("profile"),
	}
}

// Definition returns service metadata
func (p *Profile) Definition() types.Service {
	profileParams := make([]types.Parameter, 0, len(profileFields))
	for _, field := range profileFields {
		profileParams = append(profileParams, types.Parameter{
			Name:        field,
			Type:        "string",
			Description: "New " + field + " value",
			Required:    false,
		})
	}

	return types.Service{
		ID:          "profile",
		Name:        "Profile",
		Description: "Read and update the GitHub Stars profile",
		Category:    types.CategoryProfile,
		Capabilities: []string{
			"profile_read",
			"profile_update",
			"public_profile",
		},
		Tools: []types.Tool{
			{
				ID:          "stars.getUserData",
				Name:        "Get User Data",
				Description: "Fetch the logged user's profile with links and contributions",
				Returns:     "object",
			},
			{
				ID:          "stars.getUser",
				Name:        "Get User",
				Description: "Fetch the logged user including nomination status",
				Returns:     "object",
			},
			{
				ID:          "stars.getStars",
				Name:        "Get Stars",
				Description: "Fetch public contributions for a username",
				Parameters: []types.Parameter{
					{Name: "username", Type: "string", Description: "GitHub username", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "stars.updateProfile",
				Name:        "Update Profile",
				Description: "Update profile fields; only provided fields are sent",
				Parameters:  profileParams,
				Returns:     "object",
			},
		},
	}
}

// Execute dispatches a profile tool
func (p *Profile) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	if params == nil {
		params = map[string]interface{}{}
	}

	switch toolID {
	case "stars.getUserData":
		return p.getUserData(ctx)
	case "stars.getUser":
		return p.getUser(ctx)
	case "stars.getStars":
		return p.getStars(ctx, params)
	case "stars.updateProfile":
		return p.updateProfile(ctx, params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Profile) getUserData(ctx context.Context) (*types.Result, error) {
	data, err := p.adapter.GetUserData(ctx)
	if err != nil {
		return failure(err.Error())
	}
	return success(data)
}

// getUser returns whatever the upstream reports; a null loggedUser is
// still a success
func (p *Profile) getUser(ctx context.Context) (*types.Result, error) {
	data, err := p.adapter.GetUser(ctx)
	if err != nil {
		return failure(err.Error())
	}
	return success(data)
}

func (p *Profile) getStars(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	username, err := getString(params, "username", true)
	if err != nil {
		return failure(err.Error())
	}

	data, err := p.adapter.GetStars(ctx, username)
	if err != nil {
		return failure(err.Error())
	}
	return success(data)
}

func (p *Profile) updateProfile(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	input, err := types.ProfileInputFromParams(params)
	if err != nil {
		return failure(err.Error())
	}

	data := input.Variables()
	if len(data) == 0 {
		return failure("no fields to update")
	}

	result, err := p.adapter.UpdateProfile(ctx, data)
	if err != nil {
		return failure(err.Error())
	}

	p.logger.Info("profile updated", zap.Int("fields", len(data)))
	return success(result)
}
