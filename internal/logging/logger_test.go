package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("test-svc", "production", &buf)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/v1/enrichments", func(c *gin.Context) { c.Status(http.StatusTooManyRequests) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/enrichments", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "test-svc", line["service"])
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/v1/enrichments", line["path"])
	assert.Equal(t, float64(http.StatusTooManyRequests), line["status"])
}
