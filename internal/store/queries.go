package store

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/models"
)

const (
	goldTable = "gold_enrichments"

	colStatus    = "status_processamento"
	colSize      = "categoria_tamanho_job"
	colUpdatedAt = "data_atualizacao"

	// unknownCategory labels NULL categories in distributions.
	unknownCategory = "UNKNOWN"
)

// goldColumns is the column order collectGold expects.
var goldColumns = []any{
	"id_enriquecimento",
	"id_workspace",
	"nome_workspace",
	"total_contatos",
	"tipo_contato",
	colStatus,
	colSize,
	"duracao_processamento_minutos",
	"processamento_sucesso",
	"data_criacao",
	colUpdatedAt,
}

// queries renders the read queries for one SQL dialect. Only constants and
// integers reach the SQL text, so non-prepared rendering is safe.
type queries struct {
	d goqu.DialectWrapper
}

func newQueries(dialect string) queries {
	return queries{d: goqu.Dialect(dialect)}
}

// overview yields: total rows, successful rows, AVG duration, SUM contacts.
// The last three are NULL on an empty table. The casts pin the result types
// so Postgres never hands back NUMERIC.
func (q queries) overview() (string, []any, error) {
	return q.d.From(goldTable).Select(
		goqu.COUNT(goqu.Star()),
		goqu.Cast(goqu.SUM(goqu.L("CASE WHEN processamento_sucesso THEN 1 ELSE 0 END")), "BIGINT"),
		goqu.Cast(goqu.AVG("duracao_processamento_minutos"), "DOUBLE PRECISION"),
		goqu.Cast(goqu.SUM("total_contatos"), "BIGINT"),
	).ToSQL()
}

func (q queries) distribution(column string) (string, []any, error) {
	return q.d.From(goldTable).
		Select(goqu.COALESCE(goqu.C(column), unknownCategory), goqu.COUNT(goqu.Star())).
		GroupBy(goqu.C(column)).
		ToSQL()
}

func (q queries) recent(limit int) (string, []any, error) {
	return q.d.From(goldTable).
		Select(goldColumns...).
		Order(goqu.C(colUpdatedAt).Desc()).
		Limit(uint(limit)).
		ToSQL()
}

func (q queries) insert(rows []models.GoldEnrichment) (string, []any, error) {
	records := make([]any, 0, len(rows))
	for _, r := range rows {
		var duration, status, size any
		if r.DurationMinutes != nil {
			duration = *r.DurationMinutes
		}
		if r.Status != nil {
			status = *r.Status
		}
		if r.SizeCategory != nil {
			size = *r.SizeCategory
		}
		records = append(records, goqu.Record{
			"id_enriquecimento":             r.ID,
			"id_workspace":                  r.WorkspaceID,
			"nome_workspace":                r.WorkspaceName,
			"total_contatos":                r.TotalContacts,
			"tipo_contato":                  r.ContactType,
			colStatus:                       status,
			colSize:                         size,
			"duracao_processamento_minutos": duration,
			"processamento_sucesso":         r.Success,
			"data_criacao":                  r.CreatedAt.UTC(),
			colUpdatedAt:                    r.UpdatedAt.UTC(),
		})
	}
	return q.d.Insert(goldTable).Prepared(true).Rows(records...).ToSQL()
}

// rowIterator is the subset of pgx.Rows and *sql.Rows the collectors need.
type rowIterator interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectDistribution(rows rowIterator) (map[string]int64, error) {
	out := map[string]int64{}
	for rows.Next() {
		var label string
		var count int64
		if err := rows.Scan(&label, &count); err != nil {
			return nil, err
		}
		out[label] += count
	}
	return out, rows.Err()
}

func collectGold(rows rowIterator) ([]models.GoldEnrichment, error) {
	out := []models.GoldEnrichment{}
	for rows.Next() {
		var g models.GoldEnrichment
		if err := rows.Scan(
			&g.ID,
			&g.WorkspaceID,
			&g.WorkspaceName,
			&g.TotalContacts,
			&g.ContactType,
			&g.Status,
			&g.SizeCategory,
			&g.DurationMinutes,
			&g.Success,
			&g.CreatedAt,
			&g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
