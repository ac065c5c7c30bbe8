package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/analytics"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/cache"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/config"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/gateway"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/generator"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/httpserver"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/logging"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/store"
)

const serviceName = "enrichment-analytics-api"

// gold is what the server needs from either store backend.
type gold interface {
	analytics.Repository
	Ping(ctx context.Context) error
	EnsureSchema() error
	Close()
}

// main boots the service: config → DB → schema → cache → feed → HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Init(serviceName, cfg.Env)

	db, err := openStore(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("analytics store unreachable")
	}
	defer db.Close()

	// Ensure the gold table exists so an empty deployment still answers with zeros.
	if err := db.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}

	engineOpts := []analytics.Option{analytics.WithListLimit(cfg.Analytics.ListLimit)}
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rc, err := cache.NewRedisCache(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Analytics.CacheTTL,
		})
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("analytics cache disabled")
		} else {
			defer rc.Close()
			engineOpts = append(engineOpts, analytics.WithCache(rc))
		}
	}
	engine := analytics.NewEngine(db, engineOpts...)

	gen := generator.New(generator.NewHistory(), generator.Options{
		UpdateProbability: probability(cfg.Feed.UpdateProbability),
		Seed:              cfg.Feed.Seed,
	})
	feed := gateway.New(gen, gateway.Options{
		Token:               cfg.APIToken,
		TotalItems:          cfg.Feed.TotalItems,
		ThrottleProbability: probability(cfg.Feed.ThrottleProbability),
		RateLimitRPS:        cfg.Feed.RateLimitRPS,
		RateLimitBurst:      cfg.Feed.RateLimitBurst,
		Seed:                cfg.Feed.Seed,
	})

	router := httpserver.NewRouter(httpserver.Deps{
		Store:     db,
		Feed:      feed,
		Analytics: engine,
	})

	log.Info().Str("addr", cfg.Addr()).Int("total_items", feed.TotalItems()).Msg("server started")
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func openStore(cfg config.DatabaseConfig) (gold, error) {
	if cfg.Driver == config.DriverSQLite {
		return store.NewSQLiteStore(cfg.SQLitePath)
	}
	return store.ConnectPostgres(cfg.PostgresURLs())
}

// probability maps a configured 0 to "never"; the feed components read 0 as
// "use the default".
func probability(p float64) float64 {
	if p == 0 {
		return -1
	}
	return p
}
