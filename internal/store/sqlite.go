package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"

	_ "github.com/mattn/go-sqlite3"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/analytics"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/models"
)

//go:embed schema_sqlite.sql
var sqliteSchemaSQL string

// SQLiteStore reads the gold table from a local SQLite file. It backs local
// runs without Postgres and the package tests.
type SQLiteStore struct {
	db *sql.DB
	q  queries
}

var _ analytics.Repository = (*SQLiteStore)(nil)

// NewSQLiteStore opens path (":memory:" for a throwaway database).
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" a single database and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, q: newQueries("sqlite3")}, nil
}

func (s *SQLiteStore) EnsureSchema() error {
	_, err := s.db.Exec(sqliteSchemaSQL)
	return err
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() {
	_ = s.db.Close()
}

func (s *SQLiteStore) withConn(ctx context.Context, fn func(*sql.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}

// InsertRows writes gold rows. The production table is filled by the
// external pipeline; this exists for local seeding and tests.
func (s *SQLiteStore) InsertRows(ctx context.Context, rows ...models.GoldEnrichment) error {
	if len(rows) == 0 {
		return errors.New("no rows to insert")
	}
	query, args, err := s.q.insert(rows)
	if err != nil {
		return err
	}
	return s.withConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query, args...)
		return err
	})
}

func (s *SQLiteStore) Overview(ctx context.Context) (analytics.OverviewRow, error) {
	query, args, err := s.q.overview()
	if err != nil {
		return analytics.OverviewRow{}, err
	}

	var row analytics.OverviewRow
	err = s.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, args...).Scan(
			&row.Total, &row.Successes, &row.AvgDurationMinutes, &row.TotalContacts)
	})
	return row, err
}

func (s *SQLiteStore) StatusDistribution(ctx context.Context) (map[string]int64, error) {
	return s.distribution(ctx, colStatus)
}

func (s *SQLiteStore) SizeDistribution(ctx context.Context) (map[string]int64, error) {
	return s.distribution(ctx, colSize)
}

func (s *SQLiteStore) distribution(ctx context.Context, column string) (map[string]int64, error) {
	query, args, err := s.q.distribution(column)
	if err != nil {
		return nil, err
	}

	var out map[string]int64
	err = s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = collectDistribution(rows)
		return err
	})
	return out, err
}

func (s *SQLiteStore) RecentRows(ctx context.Context, limit int) ([]models.GoldEnrichment, error) {
	query, args, err := s.q.recent(limit)
	if err != nil {
		return nil, err
	}

	var out []models.GoldEnrichment
	err = s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = collectGold(rows)
		return err
	})
	return out, err
}
