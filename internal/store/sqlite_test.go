package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/analytics"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	st, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(st.Close)
	require.NoError(t, st.EnsureSchema())
	return st
}

var base = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func goldRow(id, status, size string, success bool, contacts int64, duration *float64, updatedOffset time.Duration) models.GoldEnrichment {
	return models.GoldEnrichment{
		ID:              id,
		WorkspaceID:     "ws-" + id,
		WorkspaceName:   "Workspace " + id,
		TotalContacts:   contacts,
		ContactType:     "COMPANY",
		Status:          &status,
		SizeCategory:    &size,
		DurationMinutes: duration,
		Success:         success,
		CreatedAt:       base,
		UpdatedAt:       base.Add(updatedOffset),
	}
}

func minutes(v float64) *float64 { return &v }

func TestSQLiteStore_EmptyTable(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	engine := analytics.NewEngine(st)

	overview, err := engine.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Overview{}, overview)

	charts, err := engine.Charts(ctx)
	require.NoError(t, err)
	assert.Empty(t, charts.StatusDistribution)
	assert.Empty(t, charts.SizeDistribution)

	rows, err := engine.List(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestSQLiteStore_OverviewTwoOfThreeSuccessful(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.InsertRows(ctx,
		goldRow("a", "CONCLUIDO", "PEQUENO", true, 100, minutes(10), time.Minute),
		goldRow("b", "CONCLUIDO", "MEDIO", true, 250, minutes(20), 2*time.Minute),
		goldRow("c", "FALHOU", "GRANDE", false, 1000, nil, 3*time.Minute),
	))

	raw, err := st.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), raw.Total)
	require.NotNil(t, raw.Successes)
	assert.Equal(t, int64(2), *raw.Successes)

	overview, err := analytics.NewEngine(st).Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), overview.TotalJobs)
	assert.Equal(t, 66.7, overview.SuccessRate)
	assert.Equal(t, 15.0, overview.AvgDurationMinutes)
	assert.Equal(t, int64(1350), overview.TotalContacts)
}

func TestSQLiteStore_ChartsSingleStatusNotZeroFilled(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.InsertRows(ctx,
		goldRow("a", "CONCLUIDO", "PEQUENO", true, 10, nil, 0),
		goldRow("b", "CONCLUIDO", "PEQUENO", true, 10, nil, 0),
		goldRow("c", "CONCLUIDO", "GRANDE", true, 10, nil, 0),
	))

	charts, err := analytics.NewEngine(st).Charts(ctx)

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"CONCLUIDO": 3}, charts.StatusDistribution)
	assert.Equal(t, map[string]int64{"PEQUENO": 2, "GRANDE": 1}, charts.SizeDistribution)
}

func TestSQLiteStore_RecentRowsOrderedByUpdateDesc(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.InsertRows(ctx,
		goldRow("old", "CONCLUIDO", "PEQUENO", true, 10, minutes(1.5), time.Hour),
		goldRow("newest", "PROCESSANDO", "MEDIO", false, 20, nil, 3*time.Hour),
		goldRow("middle", "FALHOU", "GRANDE", false, 30, nil, 2*time.Hour),
	))

	rows, err := st.RecentRows(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "newest", rows[0].ID)
	assert.Equal(t, "middle", rows[1].ID)
	assert.Equal(t, "old", rows[2].ID)

	assert.True(t, rows[0].UpdatedAt.Equal(base.Add(3*time.Hour)))
	assert.True(t, rows[2].CreatedAt.Equal(base))
	require.NotNil(t, rows[2].DurationMinutes)
	assert.Equal(t, 1.5, *rows[2].DurationMinutes)
	assert.Nil(t, rows[0].DurationMinutes)
	assert.True(t, rows[2].Success)
	assert.Equal(t, "ws-old", rows[2].WorkspaceID)
	require.NotNil(t, rows[0].Status)
	assert.Equal(t, "PROCESSANDO", *rows[0].Status)
	require.NotNil(t, rows[2].SizeCategory)
	assert.Equal(t, "PEQUENO", *rows[2].SizeCategory)

	limited, err := st.RecentRows(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLiteStore_NullCategoriesGroupAsUnknownButListRaw(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	_, err := st.db.ExecContext(ctx, `
		INSERT INTO gold_enrichments (id_enriquecimento, data_criacao, data_atualizacao)
		VALUES ('x', '2026-05-01 09:00:00+00:00', '2026-05-01 09:00:00+00:00')`)
	require.NoError(t, err)

	status, err := st.StatusDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{unknownCategory: 1}, status)

	rows, err := st.RecentRows(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Status)
	assert.Nil(t, rows[0].SizeCategory)
}

func TestSQLiteStore_ClosedDatabaseSurfacesAsUpstreamUnavailable(t *testing.T) {
	st, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.EnsureSchema())
	st.Close()

	_, err = analytics.NewEngine(st).Overview(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "UPSTREAM_UNAVAILABLE")
}

func TestSQLiteStore_InsertRequiresRows(t *testing.T) {
	st := newTestStore(t)

	assert.Error(t, st.InsertRows(context.Background()))
}
