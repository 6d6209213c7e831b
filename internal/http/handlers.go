// Package http contains the gin handlers for the server's REST surface.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/monitoring"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/resilience"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/providers"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/service"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/types"
	"go.uber.org/zap"
)

// expositionContentType is the Prometheus text format content type
const expositionContentType = "text/plain; version=0.0.4; charset=utf-8"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	breakers *resilience.Registry
	logger   *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, metrics *monitoring.Metrics, breakers *resilience.Registry, logger *zap.Logger) *Handlers {
	return &Handlers{
		registry: registry,
		metrics:  metrics,
		breakers: breakers,
		logger:   logger.Named("http"),
	}
}

// Root handles the banner endpoint
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "github-stars-contrib-mcp-server",
		"version": "1.0.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
		"circuit_breakers": h.breakers.AllStates(),
	})
}

// Metrics serves the Prometheus exposition with breaker-state comments
func (h *Handlers) Metrics(c *gin.Context) {
	text, err := providers.Exposition(h.metrics, h.breakers)
	if err != nil {
		h.logger.Error("metrics export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, expositionContentType, []byte(text))
}

// ListServices lists registered services, optionally by category
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// ExecuteRequest is the body of POST /services/execute
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params"`
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params)
	if err != nil {
		// Dispatch failures (unknown tool) keep the Result envelope
		c.JSON(http.StatusNotFound, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
