package providers

import (
	"context"
	"fmt"

	"github.com/svg153/github-stars-contrib-mcp-server/internal/stars"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/types"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/utils/urlcheck"
	"go.uber.org/zap"
)

// Links provides CRUD tools over profile social links
type Links struct {
	adapter *stars.Adapter
	checker *urlcheck.Checker
	logger  *zap.Logger
}

// NewLinks creates the links provider
func NewLinks(adapter *stars.Adapter, checker *urlcheck.Checker, logger *zap.Logger) *Links {
	return &Links{
		adapter: adapter,
		checker: checker,
		logger:  logger.Named("links"),
	}
}

// Definition returns service metadata
func (p *Links) Definition() types.Service {
	platformParam := types.Parameter{
		Name:        "platform",
		Type:        "string",
		Description: "Platform type (TWITTER, MEDIUM, LINKEDIN, README, STACK_OVERFLOW, DEV_TO, MASTODON, OTHER)",
		Required:    true,
	}

	return types.Service{
		ID:          "links",
		Name:        "Links",
		Description: "Manage social links on the GitHub Stars profile",
		Category:    types.CategoryLinks,
		Capabilities: []string{
			"link_crud",
		},
		Tools: []types.Tool{
			{
				ID:          "stars.createLink",
				Name:        "Create Link",
				Description: "Add a social link to the profile",
				Parameters: []types.Parameter{
					{Name: "link", Type: "string", Description: "Link URL", Required: true},
					platformParam,
				},
				Returns: "object",
			},
			{
				ID:          "stars.updateLink",
				Name:        "Update Link",
				Description: "Update an existing link",
				Parameters: []types.Parameter{
					{Name: "id", Type: "string", Description: "Link ID", Required: true},
					{Name: "link", Type: "string", Description: "New link URL", Required: true},
					platformParam,
				},
				Returns: "object",
			},
			{
				ID:          "stars.deleteLink",
				Name:        "Delete Link",
				Description: "Delete a link by ID",
				Parameters: []types.Parameter{
					{Name: "id", Type: "string", Description: "Link ID", Required: true},
				},
				Returns: "object",
			},
		},
	}
}

// Execute dispatches a links tool
func (p *Links) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	if params == nil {
		params = map[string]interface{}{}
	}

	switch toolID {
	case "stars.createLink":
		return p.create(ctx, params)
	case "stars.updateLink":
		return p.update(ctx, params)
	case "stars.deleteLink":
		return p.delete(ctx, params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// parseLink builds a validated LinkInput from raw parameters
func (p *Links) parseLink(ctx context.Context, params map[string]interface{}) (types.LinkInput, error) {
	link, err := getString(params, "link", true)
	if err != nil {
		return types.LinkInput{}, err
	}
	rawPlatform, err := getString(params, "platform", true)
	if err != nil {
		return types.LinkInput{}, err
	}
	platform, err := types.ParsePlatformType(rawPlatform)
	if err != nil {
		return types.LinkInput{}, err
	}

	input := types.LinkInput{Link: link, Platform: platform}
	if err := input.Validate(); err != nil {
		return types.LinkInput{}, err
	}
	if ok, reason := p.checker.Check(ctx, input.Link); !ok {
		return types.LinkInput{}, fmt.Errorf("url validation failed: %s", reason)
	}
	return input, nil
}

func (p *Links) create(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	input, err := p.parseLink(ctx, params)
	if err != nil {
		return failure(err.Error())
	}

	data, err := p.adapter.CreateLink(ctx, input.Link, input.Platform)
	if err != nil {
		return failure(err.Error())
	}

	p.logger.Info("link created", zap.String("platform", string(input.Platform)))
	return success(data)
}

func (p *Links) update(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	id, err := getString(params, "id", true)
	if err != nil {
		return failure(err.Error())
	}
	input, err := p.parseLink(ctx, params)
	if err != nil {
		return failure(err.Error())
	}

	data, err := p.adapter.UpdateLink(ctx, id, input.Link, input.Platform)
	if err != nil {
		return failure(err.Error())
	}

	p.logger.Info("link updated", zap.String("id", id))
	return success(data)
}

func (p *Links) delete(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	id, err := getString(params, "id", true)
	if err != nil {
		return failure(err.Error())
	}

	data, err := p.adapter.DeleteLink(ctx, id)
	if err != nil {
		return failure(err.Error())
	}

	p.logger.Info("link deleted", zap.String("id", id))
	return success(data)
}
