package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/apperrors"
)

// respondError maps an apperrors type to its HTTP status and JSON body.
func respondError(c *gin.Context, err error) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case apperrors.ErrorTypeRateLimited:
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	case apperrors.ErrorTypeValidation:
		var appErr *apperrors.AppError
		errors.As(err, &appErr)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": appErr.Message})
	case apperrors.ErrorTypeUpstreamUnavailable:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("analytics store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analytics store unavailable"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// intQuery reads an integer query parameter. A missing value yields def; an
// unparsable one yields 0, which every caller treats as out of range.
func intQuery(c *gin.Context, key string, def int) int {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
