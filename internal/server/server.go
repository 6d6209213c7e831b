// Package server wires configuration, observability, the Stars client,
// and the tool providers into a running HTTP server. All dependencies
// are constructed here and passed down explicitly; nothing is global.
package server

import (
	"context"
	"fmt"
	"net"
	nethttp "net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/config"
	httphandlers "github.com/svg153/github-stars-contrib-mcp-server/internal/http"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/monitoring"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/resilience"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/tracing"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/logging"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/providers"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/service"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/shared/id"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/stars"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/utils/urlcheck"
	"go.uber.org/zap"
)

// Server holds the wired application
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	router   *gin.Engine
	http     *nethttp.Server
	tracer   *tracing.Tracer
	registry *service.Registry
	breakers *resilience.Registry
	metrics  *monitoring.Metrics
}

// New builds the full dependency graph from config
func New(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	metrics := monitoring.NewMetrics()
	breakers := resilience.NewRegistry()
	tracer := tracing.New(tracing.Config{
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		Enabled:     cfg.Tracing.Enabled,
	}, logger)

	breaker := breakers.GetOrCreate(stars.BreakerName, resilience.Settings{
		FailureThreshold: cfg.Breaker.FailureThreshold,
		RecoveryTimeout:  cfg.Breaker.RecoveryTimeout,
		SuccessThreshold: cfg.Breaker.SuccessThreshold,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("circuit breaker state change",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	client := stars.New(cfg, breaker, metrics, tracer, logger)
	adapter := stars.NewAdapter(client)
	checker := urlcheck.New(cfg.URLCheck, metrics, logger)

	registry := service.NewRegistry()
	for _, provider := range []service.Provider{
		providers.NewContributions(adapter, metrics, checker, logger),
		providers.NewLinks(adapter, checker, logger),
		providers.NewProfile(adapter, logger),
		providers.NewObservability(metrics, breakers),
	} {
		if err := registry.Register(provider); err != nil {
			return nil, fmt.Errorf("register provider: %w", err)
		}
	}

	stats := registry.Stats()
	logger.Info("providers registered",
		zap.Any("services", stats["total_services"]),
		zap.Any("tools", stats["total_tools"]),
	)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(requestID())
	router.Use(limitBody(maxBodyBytes))

	handlers := httphandlers.NewHandlers(registry, metrics, breakers, logger)
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", handlers.Metrics)
	router.GET("/services", handlers.ListServices)
	router.POST("/services/execute", handlers.ExecuteService)

	return &Server{
		cfg:      cfg,
		logger:   logger,
		router:   router,
		tracer:   tracer,
		registry: registry,
		breakers: breakers,
		metrics:  metrics,
	}, nil
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	addr := net.JoinHostPort(s.cfg.Server.Host, s.cfg.Server.Port)
	s.http = &nethttp.Server{Addr: addr, Handler: s.router}

	s.logger.Info("server listening", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and flushes the tracer
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	s.tracer.Shutdown()
	_ = s.logger.Sync()
	return err
}

// maxBodyBytes caps JSON request payloads at 1MB
const maxBodyBytes = 1 << 20

// limitBody rejects oversized request bodies; binding fails with 400
// once the reader hits the cap
func limitBody(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = nethttp.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}

// requestID tags every request with a ULID for log correlation
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := string(id.NewRequestID())
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Set("request_id", rid)
		c.Next()
	}
}
