package analytics

import (
	"context"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/models"
)

// OverviewRow is the raw result of the KPI query. Aggregates over an empty
// table come back NULL, hence the pointers.
type OverviewRow struct {
	Total              int64
	Successes          *int64
	AvgDurationMinutes *float64
	TotalContacts      *int64
}

// Repository is read-only access to the gold table, one method per query.
// Each call acquires and releases its own connection.
type Repository interface {
	Overview(ctx context.Context) (OverviewRow, error)
	StatusDistribution(ctx context.Context) (map[string]int64, error)
	SizeDistribution(ctx context.Context) (map[string]int64, error)
	RecentRows(ctx context.Context, limit int) ([]models.GoldEnrichment, error)
}

// Cache stores serialized snapshots for a bounded time.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
