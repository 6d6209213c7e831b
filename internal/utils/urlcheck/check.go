// Package urlcheck pre-validates contribution and link URLs with a
// lightweight HEAD request. Results are cached per URL for a TTL so
// repeated submissions don't hammer third-party sites.
package urlcheck

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/config"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

const cacheType = "url_validation"

type entry struct {
	checkedAt time.Time
	ok        bool
	reason    string
}

// Checker validates URL accessibility with a TTL cache. A disabled
// checker accepts every URL.
type Checker struct {
	http    *resty.Client
	metrics *monitoring.Metrics
	logger  *zap.Logger
	enabled bool
	ttl     time.Duration

	mu        sync.Mutex
	cache     map[string]entry
	sizeBytes int64
}

// New creates a URL checker from config
func New(cfg config.URLCheckConfig, metrics *monitoring.Metrics, logger *zap.Logger) *Checker {
	return &Checker{
		http:    resty.New().SetTimeout(cfg.Timeout),
		metrics: metrics,
		logger:  logger.Named("urlcheck"),
		enabled: cfg.Enabled,
		ttl:     cfg.TTL,
		cache:   make(map[string]entry),
	}
}

// Check reports whether the URL is reachable. On rejection the reason is
// a short label ("status 404", "timeout", "error"); accepted URLs return
// an empty reason.
func (c *Checker) Check(ctx context.Context, url string) (bool, string) {
	if !c.enabled {
		return true, ""
	}

	now := time.Now()

	c.mu.Lock()
	if cached, ok := c.cache[url]; ok && now.Sub(cached.checkedAt) < c.ttl {
		c.mu.Unlock()
		c.metrics.RecordCacheHit(cacheType)
		return cached.ok, cached.reason
	}
	c.mu.Unlock()
	c.metrics.RecordCacheMiss(cacheType)

	ok, reason := c.head(ctx, url)

	c.mu.Lock()
	if prev, exists := c.cache[url]; exists {
		c.sizeBytes -= int64(len(url) + len(prev.reason))
	}
	c.cache[url] = entry{checkedAt: now, ok: ok, reason: reason}
	c.sizeBytes += int64(len(url) + len(reason))
	size := c.sizeBytes
	c.mu.Unlock()
	c.metrics.SetCacheSize(cacheType, size)

	return ok, reason
}

// head performs the actual HEAD request, following redirects
func (c *Checker) head(ctx context.Context, url string) (bool, string) {
	resp, err := c.http.R().SetContext(ctx).Head(url)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return false, "timeout"
		}
		c.logger.Debug("url check failed", zap.String("url", url), zap.Error(err))
		return false, "error"
	}
	if resp.StatusCode() >= 400 {
		return false, fmt.Sprintf("status %d", resp.StatusCode())
	}
	return true, ""
}
