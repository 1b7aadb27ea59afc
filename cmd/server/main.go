package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/bom-costing/internal/api"
	"github.com/Spok95/bom-costing/internal/config"
	"github.com/Spok95/bom-costing/internal/domain/expensetypes"
	"github.com/Spok95/bom-costing/internal/domain/materials"
	"github.com/Spok95/bom-costing/internal/domain/products"
	"github.com/Spok95/bom-costing/internal/domain/units"
	"github.com/Spok95/bom-costing/internal/infra/db"
	httpx "github.com/Spok95/bom-costing/internal/infra/http"
	"github.com/Spok95/bom-costing/internal/infra/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	a := api.New(log,
		materials.NewRepo(pool),
		products.NewRepo(pool),
		units.NewRepo(pool),
		expensetypes.NewRepo(pool),
	)

	srv := httpx.New(cfg.HTTP.Addr, a.Routes(), cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
