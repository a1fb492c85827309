package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "caliper",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "caliper",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

type Server struct {
	Engine *gin.Engine
	Addr   string
	health HealthChecker
}

// HealthChecker is an interface for components that can report their health status.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

func New(addr string, health HealthChecker, mode string) *Server {
	// Set Gin mode based on configuration
	if mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), instrument())

	s := &Server{
		Engine: r,
		Addr:   addr,
		health: health,
	}

	// Health check endpoint with database connectivity verification
	r.GET("/health", s.healthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return s
}

// instrument records request counts and latency per matched route, so
// path parameters do not explode label cardinality.
func instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	// Check database connectivity
	if s.health != nil {
		if err := s.health.Ping(ctx); err != nil {
			slog.Error("[Server] Health check failed: database unreachable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("[Server] Starting HTTP server", "address", s.Addr)

	go func() {
		<-ctx.Done()
		slog.Info("[Server] Stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("[Server] HTTP server forced to shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
