package stars

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/config"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/monitoring"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/resilience"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/tracing"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BreakerName identifies the upstream circuit breaker. One breaker guards
// the whole API, not one per operation.
const BreakerName = "stars-api"

// userAgent mirrors a browser; some endpoints validate origin headers.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.5 Safari/605.1.15"

// Client executes GraphQL operations against the Stars API with retries,
// circuit breaking, metrics, and tracing.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	logger  *zap.Logger
	retry   config.RetryConfig
	apiURL  string
}

// graphQLResponse is the upstream response envelope
type graphQLResponse struct {
	Data   map[string]interface{} `json:"data"`
	Errors []graphQLError         `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// New creates a Stars API client. The breaker is shared with the
// registry so its state is visible on the metrics endpoint.
func New(cfg *config.Config, breaker *resilience.Breaker, metrics *monitoring.Metrics, tracer *tracing.Tracer, logger *zap.Logger) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0 // retries are driven by the executor loop
	retryClient.Logger = nil

	httpClient := resty.New().
		SetTimeout(30 * time.Second).
		SetTransport(retryClient.HTTPClient.Transport).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "*/*").
		SetHeader("Origin", "https://stars.github.com").
		SetHeader("Referer", "https://stars.github.com/").
		SetHeader("User-Agent", userAgent)

	if cfg.Stars.Token != "" {
		httpClient.SetAuthToken(cfg.Stars.Token)
		httpClient.SetCookie(&http.Cookie{Name: "token", Value: cfg.Stars.Token})
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit.Enabled && cfg.RateLimit.RequestsPerSecond > 0 {
		burst := int(cfg.RateLimit.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), burst)
	}

	return &Client{
		http:    httpClient,
		limiter: limiter,
		breaker: breaker,
		metrics: metrics,
		tracer:  tracer,
		logger:  logger.Named("stars"),
		retry:   cfg.Retry,
		apiURL:  strings.TrimRight(cfg.Stars.APIURL, "/") + "/",
	}
}

// Execute runs a GraphQL operation. Upstream rejections (HTTP errors,
// GraphQL errors, undecodable bodies, open breaker) come back as failure
// Results; only transport failures are retried, and return an error once
// attempts are exhausted.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}, op string) (*types.Result, error) {
	if variables == nil {
		variables = map[string]interface{}{}
	}
	endpoint := "/graphql/" + op

	payload := map[string]interface{}{"query": query, "variables": variables}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode graphql payload: %w", err)
	}
	requestSize := int64(len(encoded))

	span, ctx := c.tracer.StartSpan(ctx, op, map[string]string{
		"operation":          op,
		"request_size_bytes": strconv.FormatInt(requestSize, 10),
	})
	defer span.End()

	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			c.metrics.RecordRetry(endpoint, attempt)
			wait := retryablehttp.LinearJitterBackoff(c.retry.WaitMin, c.retry.WaitMax, attempt-1, nil)
			select {
			case <-ctx.Done():
				span.SetError(ctx.Err())
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			span.SetError(err)
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		start := time.Now()
		raw, err := c.breaker.Execute(func() (interface{}, error) {
			return c.http.R().SetContext(ctx).SetBody(encoded).Post(c.apiURL)
		})
		c.refreshBreakerGauges()

		if errors.Is(err, resilience.ErrCircuitOpen) {
			c.metrics.RecordError("CIRCUIT_BREAKER_OPEN", endpoint)
			c.logger.Error("request rejected, upstream unavailable",
				zap.String("operation", op),
			)
			span.SetError(err)
			return types.Failure("Stars API service temporarily unavailable"), nil
		}
		if err != nil {
			c.metrics.RecordError("NETWORK_ERROR", endpoint)
			c.logger.Warn("transport failure",
				zap.String("operation", op),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			span.AddEvent("transport_failure", map[string]interface{}{"attempt": attempt})
			lastErr = err
			continue
		}

		resp := raw.(*resty.Response)
		latency := time.Since(start)
		c.metrics.RecordRequest("POST", endpoint, resp.StatusCode(), latency, requestSize, int64(len(resp.Body())))
		c.tracer.AddEvent(span, "http_response", map[string]interface{}{
			"status":      resp.StatusCode(),
			"duration_ms": latency.Milliseconds(),
		})

		return c.classify(span, resp, op, endpoint), nil
	}

	span.SetError(lastErr)
	return nil, fmt.Errorf("stars api request failed after %d attempts: %w", c.retry.MaxAttempts, lastErr)
}

// classify turns an upstream HTTP response into a Result. Everything
// here is a value, never a retryable error.
func (c *Client) classify(span *tracing.Span, resp *resty.Response, op, endpoint string) *types.Result {
	if resp.StatusCode() >= 400 {
		c.metrics.RecordError(fmt.Sprintf("HTTP_%d", resp.StatusCode()), endpoint)
		c.logger.Error("http_error",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode()),
		)
		span.SetError(fmt.Errorf("HTTP %d", resp.StatusCode()))
		return types.Failure(fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), resp.String()))
	}

	var body graphQLResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		c.metrics.RecordError("JSON_DECODE_ERROR", endpoint)
		c.logger.Error("json_error",
			zap.String("operation", op),
			zap.Error(err),
		)
		span.SetError(err)
		return types.Failure("Invalid JSON response")
	}

	if len(body.Errors) > 0 {
		message := body.Errors[0].Message
		if message == "" {
			message = "Unknown error"
		}
		c.metrics.RecordError("GRAPHQL_ERROR", endpoint)
		c.logger.Error("graphql_error",
			zap.String("operation", op),
			zap.String("message", message),
		)
		span.SetError(errors.New(message))
		return types.Failure(message)
	}

	c.tracer.AddEvent(span, "graphql_success", nil)
	if body.Data == nil {
		body.Data = map[string]interface{}{}
	}
	return types.Success(body.Data)
}

// refreshBreakerGauges publishes the breaker state after every outcome
func (c *Client) refreshBreakerGauges() {
	snap := c.breaker.Snapshot()
	c.metrics.UpdateCircuitBreakerState(c.breaker.Name(), c.breaker.State().Code(), snap.FailureCount)
}

// CreateContribution creates a single contribution
func (c *Client) CreateContribution(ctx context.Context, input types.ContributionInput) (*types.Result, error) {
	variables := map[string]interface{}{"data": input.ToVariables()}
	return c.Execute(ctx, createContributionMutation, variables, "createContribution")
}

// CreateContributions creates multiple contributions in one mutation.
// On success the Result data carries an "ids" key with the created IDs.
func (c *Client) CreateContributions(ctx context.Context, items []map[string]interface{}) (*types.Result, error) {
	result, err := c.Execute(ctx, createContributionsMutation, map[string]interface{}{"data": items}, "createContributions")
	if err != nil || !result.Success {
		return result, err
	}

	ids := []interface{}{}
	if edges, ok := result.Data["createContributions"].([]interface{}); ok {
		for _, edge := range edges {
			node, ok := edge.(map[string]interface{})
			if !ok {
				continue
			}
			if id, ok := node["id"]; ok && id != nil {
				ids = append(ids, id)
			}
		}
	}
	return types.Success(map[string]interface{}{"ids": ids}), nil
}

// UpdateContribution updates an existing contribution
func (c *Client) UpdateContribution(ctx context.Context, id string, data map[string]interface{}) (*types.Result, error) {
	return c.Execute(ctx, updateContributionMutation, map[string]interface{}{"id": id, "data": data}, "updateContribution")
}

// DeleteContribution deletes a contribution by ID
func (c *Client) DeleteContribution(ctx context.Context, id string) (*types.Result, error) {
	return c.Execute(ctx, deleteContributionMutation, map[string]interface{}{"id": id}, "deleteContribution")
}

// CreateLink adds a social link to the profile
func (c *Client) CreateLink(ctx context.Context, link string, platform types.PlatformType) (*types.Result, error) {
	return c.Execute(ctx, createLinkMutation, map[string]interface{}{"link": link, "platform": string(platform)}, "createLink")
}

// UpdateLink updates an existing link
func (c *Client) UpdateLink(ctx context.Context, id, link string, platform types.PlatformType) (*types.Result, error) {
	return c.Execute(ctx, updateLinkMutation, map[string]interface{}{"id": id, "link": link, "platform": string(platform)}, "updateLink")
}

// DeleteLink deletes a link by ID
func (c *Client) DeleteLink(ctx context.Context, id string) (*types.Result, error) {
	return c.Execute(ctx, deleteLinkMutation, map[string]interface{}{"id": id}, "deleteLink")
}

// GetUserData fetches the logged user's profile with links and contributions
func (c *Client) GetUserData(ctx context.Context) (*types.Result, error) {
	return c.Execute(ctx, userDataQuery, nil, "getUserData")
}

// GetUser fetches the logged user including nomination status
func (c *Client) GetUser(ctx context.Context) (*types.Result, error) {
	return c.Execute(ctx, userQuery, nil, "getUser")
}

// GetStars fetches the public profile contributions for a username
func (c *Client) GetStars(ctx context.Context, username string) (*types.Result, error) {
	return c.Execute(ctx, getStarsQuery, map[string]interface{}{"username": username}, "getStars")
}

// UpdateProfile updates profile fields; only the keys present in data
// are sent upstream
func (c *Client) UpdateProfile(ctx context.Context, data map[string]interface{}) (*types.Result, error) {
	return c.Execute(ctx, updateProfileMutation, map[string]interface{}{"data": data}, "updateProfile")
}
