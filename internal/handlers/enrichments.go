package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/models"
)

const (
	defaultPage  = 1
	defaultLimit = 50
)

// FeedFetcher serves pages of the simulated enrichment feed.
type FeedFetcher interface {
	Fetch(authHeader string, page, limit int) (models.PageResult, error)
}

// RegisterEnrichmentRoutes registers the simulated upstream endpoint.
//
// GET /v1/enrichments?page=&limit=
// - Requires Authorization: Bearer <token> (401 otherwise, checked first)
// - 429 on simulated throttling
// - 422 when page < 1 or limit outside [1,100]
func RegisterEnrichmentRoutes(r gin.IRoutes, feed FeedFetcher) {
	r.GET("/v1/enrichments", func(c *gin.Context) {
		page := intQuery(c, "page", defaultPage)
		limit := intQuery(c, "limit", defaultLimit)

		res, err := feed.Fetch(c.GetHeader("Authorization"), page, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, res)
	})
}
