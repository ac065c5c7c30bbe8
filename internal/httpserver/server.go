package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/handlers"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/logging"
)

// Pinger reports whether the analytics store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the components the router exposes.
type Deps struct {
	Store     Pinger
	Feed      handlers.FeedFetcher
	Analytics handlers.AnalyticsReader
}

// NewRouter wires public endpoints and the feed/analytics APIs.
// Public: /, /health, /ready, /analytics/*
// Bearer-checked by the gateway: /v1/enrichments
func NewRouter(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "enrichment API running", "mode": "Analytics Enabled"})
	})

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the DB dependency is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := d.Store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	handlers.RegisterEnrichmentRoutes(r, d.Feed)
	handlers.RegisterAnalyticsRoutes(r, d.Analytics)

	return r
}
