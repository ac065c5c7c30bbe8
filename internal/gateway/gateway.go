package gateway

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/apperrors"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/auth"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/models"
)

const (
	// DefaultTotalItems is the declared size of the upstream feed. total_pages
	// is computed against it, not against anything generated.
	DefaultTotalItems = 5000

	// DefaultThrottleProbability is the chance an authorized call gets a 429.
	DefaultThrottleProbability = 0.10

	MinLimit = 1
	MaxLimit = 100
)

// Generator produces a fresh batch of records per page.
type Generator interface {
	Generate(n int) []models.EnrichmentRecord
}

// Roller is the random source for throttle injection.
type Roller interface {
	Float64() float64
}

// Options configures a Gateway. Zero fields get defaults.
type Options struct {
	Token      string
	TotalItems int

	// ThrottleProbability is the chance of RateLimited after auth succeeds.
	// Zero means DefaultThrottleProbability; a negative value disables it.
	ThrottleProbability float64

	// RateLimitRPS enables a token bucket in front of the probabilistic roll.
	// Set to <=0 to disable.
	RateLimitRPS   float64
	RateLimitBurst int

	Roller Roller
	Seed   uint64
}

// Gateway is the paginated, token-authenticated, rate-limited front of the
// simulated enrichment feed.
type Gateway struct {
	token   auth.BearerToken
	gen     Generator
	limiter *rate.Limiter

	mu     sync.Mutex
	roller Roller

	totalItems          int
	throttleProbability float64
}

func New(gen Generator, opts Options) *Gateway {
	if opts.TotalItems <= 0 {
		opts.TotalItems = DefaultTotalItems
	}
	if opts.ThrottleProbability == 0 {
		opts.ThrottleProbability = DefaultThrottleProbability
	}
	if opts.Roller == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		opts.Roller = rand.New(rand.NewPCG(seed, ^seed))
	}

	g := &Gateway{
		token:               auth.NewBearerToken(opts.Token),
		gen:                 gen,
		roller:              opts.Roller,
		totalItems:          opts.TotalItems,
		throttleProbability: opts.ThrottleProbability,
	}
	if opts.RateLimitRPS > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}
	return g
}

// TotalItems returns the declared feed size.
func (g *Gateway) TotalItems() int {
	return g.totalItems
}

// Fetch serves one page of the feed.
//
// Order of checks: the Authorization header first, then page/limit bounds,
// then throttling (token bucket, then the probabilistic roll). A bad token is
// always Unauthorized and bad parameters always a ValidationError, whatever
// the roll. Out-of-range page or limit is never clamped and consumes no
// token-bucket capacity.
func (g *Gateway) Fetch(authHeader string, page, limit int) (models.PageResult, error) {
	if !g.token.Verify(authHeader) {
		return models.PageResult{}, apperrors.NewUnauthorized("invalid or missing bearer token")
	}

	if page < 1 {
		return models.PageResult{}, apperrors.NewValidation("page must be >= 1")
	}
	if limit < MinLimit || limit > MaxLimit {
		return models.PageResult{}, apperrors.NewValidation(
			fmt.Sprintf("limit must be between %d and %d", MinLimit, MaxLimit))
	}

	if g.throttled() {
		return models.PageResult{}, apperrors.NewRateLimited("too many requests")
	}

	// Each call synthesizes a new batch.
	data := g.gen.Generate(limit)

	return models.PageResult{
		Meta: models.PageMeta{
			CurrentPage:  page,
			ItemsPerPage: limit,
			TotalItems:   g.totalItems,
			TotalPages:   g.totalItems / limit,
		},
		Data: data,
	}, nil
}

func (g *Gateway) throttled() bool {
	if g.limiter != nil && !g.limiter.Allow() {
		log.Debug().Msg("feed request rejected by token bucket")
		return true
	}

	g.mu.Lock()
	roll := g.roller.Float64()
	g.mu.Unlock()

	if roll < g.throttleProbability {
		log.Debug().Float64("roll", roll).Msg("feed request throttled")
		return true
	}
	return false
}
