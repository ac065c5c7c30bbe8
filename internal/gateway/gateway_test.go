package gateway

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/apperrors"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/generator"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/models"
)

const testToken = "driva_test_key_abc123xyz789"

type fixedRoll float64

func (f fixedRoll) Float64() float64 { return float64(f) }

// countingGenerator records how many records were asked for.
type countingGenerator struct {
	mu    sync.Mutex
	calls []int
}

func (c *countingGenerator) Generate(n int) []models.EnrichmentRecord {
	c.mu.Lock()
	c.calls = append(c.calls, n)
	c.mu.Unlock()
	return make([]models.EnrichmentRecord, n)
}

func newGateway(roll float64) (*Gateway, *countingGenerator) {
	gen := &countingGenerator{}
	return New(gen, Options{Token: testToken, Roller: fixedRoll(roll)}), gen
}

func TestFetch_ScenarioPageOneLimitFifty(t *testing.T) {
	gw := New(generator.New(nil, generator.Options{Seed: 3}), Options{Token: testToken, Roller: fixedRoll(0.5)})

	res, err := gw.Fetch("Bearer "+testToken, 1, 50)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Meta.CurrentPage)
	assert.Equal(t, 50, res.Meta.ItemsPerPage)
	assert.Equal(t, DefaultTotalItems, res.Meta.TotalItems)
	assert.Equal(t, 100, res.Meta.TotalPages)
	assert.Len(t, res.Data, 50)
}

func TestFetch_TotalPagesIsFloorOfDeclaredTotal(t *testing.T) {
	gw, gen := newGateway(0.99)

	for limit := MinLimit; limit <= MaxLimit; limit++ {
		res, err := gw.Fetch("Bearer "+testToken, 7, limit)
		require.NoError(t, err)
		assert.Equal(t, DefaultTotalItems/limit, res.Meta.TotalPages, "limit=%d", limit)
		assert.Equal(t, 7, res.Meta.CurrentPage)
		assert.Len(t, res.Data, limit)
	}
	assert.Len(t, gen.calls, MaxLimit)
}

func TestFetch_WrongTokenAlwaysUnauthorized(t *testing.T) {
	headers := []string{"", "Bearer wrong", testToken, "Token " + testToken}

	for _, roll := range []float64{0, 0.05, 0.5, 0.99} {
		gw, gen := newGateway(roll)
		for _, h := range headers {
			_, err := gw.Fetch(h, 0, 1000)
			assert.True(t, apperrors.IsUnauthorized(err), "header=%q roll=%v", h, roll)
		}
		assert.Empty(t, gen.calls)
	}
}

func TestFetch_ValidTokenNeverUnauthorized(t *testing.T) {
	for _, roll := range []float64{0, 0.09, 0.1, 0.7} {
		gw, _ := newGateway(roll)
		_, err := gw.Fetch("Bearer "+testToken, 1, 10)
		assert.False(t, apperrors.IsUnauthorized(err))
	}
}

func TestFetch_ThrottleRoll(t *testing.T) {
	gw, gen := newGateway(0.0999)
	_, err := gw.Fetch("Bearer "+testToken, 1, 10)
	assert.True(t, apperrors.IsRateLimited(err))
	assert.Empty(t, gen.calls)

	gw, _ = newGateway(0.1)
	_, err = gw.Fetch("Bearer "+testToken, 1, 10)
	assert.NoError(t, err)
}

func TestFetch_InvalidParamsRejectedBeforeThrottle(t *testing.T) {
	for _, roll := range []float64{0, 0.05, 0.0999} {
		gw, gen := newGateway(roll)

		_, err := gw.Fetch("Bearer "+testToken, 1, 500)
		assert.True(t, apperrors.IsValidation(err), "roll=%v", roll)

		_, err = gw.Fetch("Bearer "+testToken, 0, 10)
		assert.True(t, apperrors.IsValidation(err), "roll=%v", roll)

		assert.Empty(t, gen.calls)
	}
}

func TestFetch_OutOfRangeParamsAreValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
	}{
		{name: "page_zero", page: 0, limit: 10},
		{name: "page_negative", page: -1, limit: 10},
		{name: "limit_zero", page: 1, limit: 0},
		{name: "limit_over_max", page: 1, limit: 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, gen := newGateway(0.9)
			_, err := gw.Fetch("Bearer "+testToken, tt.page, tt.limit)
			assert.True(t, apperrors.IsValidation(err))
			assert.Empty(t, gen.calls)
		})
	}
}

func TestFetch_NegativeProbabilityDisablesThrottle(t *testing.T) {
	gen := &countingGenerator{}
	gw := New(gen, Options{Token: testToken, ThrottleProbability: -1, Roller: fixedRoll(0)})

	_, err := gw.Fetch("Bearer "+testToken, 1, 5)

	assert.NoError(t, err)
}

func TestFetch_TokenBucketThrottles(t *testing.T) {
	gen := &countingGenerator{}
	gw := New(gen, Options{
		Token:               testToken,
		ThrottleProbability: -1,
		RateLimitRPS:        1.0 / float64(time.Hour/time.Second),
		RateLimitBurst:      2,
	})

	_, err1 := gw.Fetch("Bearer "+testToken, 1, 5)
	_, err2 := gw.Fetch("Bearer "+testToken, 1, 5)
	_, err3 := gw.Fetch("Bearer "+testToken, 1, 5)

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.True(t, apperrors.IsRateLimited(err3))
}

func TestFetch_InvalidParamsDoNotConsumeTokenBucket(t *testing.T) {
	gw := New(&countingGenerator{}, Options{
		Token:               testToken,
		ThrottleProbability: -1,
		RateLimitRPS:        1.0 / float64(time.Hour/time.Second),
		RateLimitBurst:      1,
	})

	for i := 0; i < 5; i++ {
		_, err := gw.Fetch("Bearer "+testToken, 1, 101)
		require.True(t, apperrors.IsValidation(err))
	}

	_, err := gw.Fetch("Bearer "+testToken, 1, 5)
	assert.NoError(t, err)
}

func TestFetch_CustomTotalItems(t *testing.T) {
	gw := New(&countingGenerator{}, Options{Token: testToken, TotalItems: 120, Roller: fixedRoll(0.5)})

	res, err := gw.Fetch("Bearer "+testToken, 2, 50)

	require.NoError(t, err)
	assert.Equal(t, 120, res.Meta.TotalItems)
	assert.Equal(t, 2, res.Meta.TotalPages)
	assert.Equal(t, 120, gw.TotalItems())
}
