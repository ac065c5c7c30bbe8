package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/analytics"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/models"
)

// schemaSQL is embedded so the service can self-bootstrap its database schema.
//
//go:embed schema.sql
var schemaSQL string

// PostgresStore reads the gold table from Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
	q    queries
}

var _ analytics.Repository = (*PostgresStore)(nil)

// NewPostgresStore creates a connection pool and fails fast if DB is unreachable.
func NewPostgresStore(dbURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool, q: newQueries("postgres")}, nil
}

// ConnectPostgres tries each URL in order and returns the first store that
// answers a ping. The error joins every attempt's failure.
func ConnectPostgres(urls []string) (*PostgresStore, error) {
	if len(urls) == 0 {
		return nil, errors.New("no database URL configured")
	}

	var errs []error
	for _, u := range urls {
		host := hostOf(u)
		st, err := NewPostgresStore(u)
		if err == nil {
			log.Info().Str("host", host).Msg("connected to postgres")
			return st, nil
		}
		log.Warn().Err(err).Str("host", host).Msg("postgres not reachable, trying next host")
		errs = append(errs, fmt.Errorf("%s: %w", host, err))
	}
	return nil, errors.Join(errs...)
}

func hostOf(dbURL string) string {
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return "invalid-url"
	}
	return fmt.Sprintf("%s:%d", cfg.ConnConfig.Host, cfg.ConnConfig.Port)
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *PostgresStore) EnsureSchema() error {
	_, err := p.pool.Exec(context.Background(), schemaSQL)
	return err
}

// Ping is used by readiness endpoint to validate DB connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// withConn holds one pooled connection for the duration of fn and releases
// it on every exit path.
func (p *PostgresStore) withConn(ctx context.Context, fn func(*pgxpool.Conn) error) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return fn(conn)
}

func (p *PostgresStore) Overview(ctx context.Context) (analytics.OverviewRow, error) {
	query, args, err := p.q.overview()
	if err != nil {
		return analytics.OverviewRow{}, err
	}

	var row analytics.OverviewRow
	err = p.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(
			&row.Total, &row.Successes, &row.AvgDurationMinutes, &row.TotalContacts)
	})
	return row, err
}

func (p *PostgresStore) StatusDistribution(ctx context.Context) (map[string]int64, error) {
	return p.distribution(ctx, colStatus)
}

func (p *PostgresStore) SizeDistribution(ctx context.Context) (map[string]int64, error) {
	return p.distribution(ctx, colSize)
}

func (p *PostgresStore) distribution(ctx context.Context, column string) (map[string]int64, error) {
	query, args, err := p.q.distribution(column)
	if err != nil {
		return nil, err
	}

	var out map[string]int64
	err = p.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = collectDistribution(rows)
		return err
	})
	return out, err
}

// RecentRows returns up to limit rows, most recently updated first.
func (p *PostgresStore) RecentRows(ctx context.Context, limit int) ([]models.GoldEnrichment, error) {
	query, args, err := p.q.recent(limit)
	if err != nil {
		return nil, err
	}

	var out []models.GoldEnrichment
	err = p.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = collectGold(rows)
		return err
	})
	return out, err
}
