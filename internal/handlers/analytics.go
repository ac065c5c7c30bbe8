package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/analytics"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/apperrors"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/models"
)

// AnalyticsReader is the read side the dashboard polls.
type AnalyticsReader interface {
	Overview(ctx context.Context) (models.Overview, error)
	Charts(ctx context.Context) (models.Charts, error)
	List(ctx context.Context, limit int) ([]models.GoldEnrichment, error)
}

// RegisterAnalyticsRoutes registers the read-only KPI endpoints.
//
// GET /analytics/overview
// GET /analytics/charts
// GET /analytics/list?limit= (default from config, max 1000)
//
// A store failure is a 503; an empty table is a 200 with zeros.
func RegisterAnalyticsRoutes(r gin.IRoutes, reader AnalyticsReader) {
	r.GET("/analytics/overview", func(c *gin.Context) {
		out, err := reader.Overview(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	r.GET("/analytics/charts", func(c *gin.Context) {
		out, err := reader.Charts(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	r.GET("/analytics/list", func(c *gin.Context) {
		// 0 lets the engine apply its configured default.
		limit := 0
		if _, ok := c.GetQuery("limit"); ok {
			limit = intQuery(c, "limit", 0)
			if limit < 1 || limit > analytics.MaxListLimit {
				respondError(c, apperrors.NewValidation(
					fmt.Sprintf("limit must be between 1 and %d", analytics.MaxListLimit)))
				return
			}
		}

		out, err := reader.List(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
}
