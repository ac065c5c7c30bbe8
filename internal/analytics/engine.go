package analytics

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/apperrors"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/models"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000

	overviewCacheKey = "analytics:overview"
	chartsCacheKey   = "analytics:charts"
)

// Engine turns gold rows into KPIs, distributions and a recency list.
// All operations tolerate an empty table.
type Engine struct {
	repo      Repository
	cache     Cache
	listLimit int
}

type Option func(*Engine)

// WithCache serves Overview and Charts from c when possible.
func WithCache(c Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithListLimit sets how many rows List returns when no limit is given.
// Values outside [1, MaxListLimit] keep DefaultListLimit.
func WithListLimit(n int) Option {
	return func(e *Engine) {
		if n <= 0 || n > MaxListLimit {
			log.Warn().Int("list_limit", n).Int("max", MaxListLimit).Msg("list limit out of range, using default")
			return
		}
		e.listLimit = n
	}
}

func NewEngine(repo Repository, opts ...Option) *Engine {
	e := &Engine{repo: repo, listLimit: DefaultListLimit}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Overview returns the KPI block. Success rate and average duration are
// rounded to one decimal; NULL aggregates become 0.
func (e *Engine) Overview(ctx context.Context) (models.Overview, error) {
	var out models.Overview
	if e.cached(ctx, overviewCacheKey, &out) {
		return out, nil
	}

	row, err := e.repo.Overview(ctx)
	if err != nil {
		return models.Overview{}, apperrors.NewUpstreamUnavailable("overview query failed", err)
	}

	out = models.Overview{TotalJobs: row.Total}
	if row.Total > 0 && row.Successes != nil {
		out.SuccessRate = round1(float64(*row.Successes) / float64(row.Total) * 100)
	}
	if row.AvgDurationMinutes != nil {
		out.AvgDurationMinutes = round1(*row.AvgDurationMinutes)
	}
	if row.TotalContacts != nil {
		out.TotalContacts = *row.TotalContacts
	}

	e.store(ctx, overviewCacheKey, out)
	return out, nil
}

// Charts returns counts grouped by processing status and by job size.
// Only categories present in the table appear.
func (e *Engine) Charts(ctx context.Context) (models.Charts, error) {
	var out models.Charts
	if e.cached(ctx, chartsCacheKey, &out) {
		return out, nil
	}

	status, err := e.repo.StatusDistribution(ctx)
	if err != nil {
		return models.Charts{}, apperrors.NewUpstreamUnavailable("status distribution query failed", err)
	}
	size, err := e.repo.SizeDistribution(ctx)
	if err != nil {
		return models.Charts{}, apperrors.NewUpstreamUnavailable("size distribution query failed", err)
	}

	out = models.Charts{StatusDistribution: nonNil(status), SizeDistribution: nonNil(size)}
	e.store(ctx, chartsCacheKey, out)
	return out, nil
}

// List returns up to limit rows ordered by data_atualizacao descending.
// limit <= 0 uses the engine default; it is capped at MaxListLimit.
func (e *Engine) List(ctx context.Context, limit int) ([]models.GoldEnrichment, error) {
	if limit <= 0 {
		limit = e.listLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	rows, err := e.repo.RecentRows(ctx, limit)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable("recent rows query failed", err)
	}
	if rows == nil {
		rows = []models.GoldEnrichment{}
	}
	return rows, nil
}

func (e *Engine) cached(ctx context.Context, key string, dst any) bool {
	if e.cache == nil {
		return false
	}
	b, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("analytics cache read failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("analytics cache entry unreadable")
		return false
	}
	return true
}

func (e *Engine) store(ctx context.Context, key string, v any) {
	if e.cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, key, b); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("analytics cache write failed")
	}
}

// round1 rounds to one decimal on the exact binary value, ties to even:
// 6.25 -> 6.2, 12.35 -> 12.3 (stored just below the tie), 0.45 -> 0.5
// (stored just above it).
func round1(v float64) float64 {
	out, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return out
}

func nonNil(m map[string]int64) map[string]int64 {
	if m == nil {
		return map[string]int64{}
	}
	return m
}
