// Package main is the entry point for motoctl, the trip planner CLI.
// Its sole responsibility is wiring dependencies together and dispatching
// the command line. No business logic belongs here.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/moto-trip-planner/internal/cli"
	"github.com/pkordes/moto-trip-planner/internal/clock"
	"github.com/pkordes/moto-trip-planner/internal/config"
	"github.com/pkordes/moto-trip-planner/internal/repo"
	"github.com/pkordes/moto-trip-planner/internal/service"
	"github.com/pkordes/moto-trip-planner/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "motoctl: %s\n", cli.Message(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// --- Logger -----------------------------------------------------------
	// Logs go to stderr so stdout stays clean for --json and CSV output.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Store ------------------------------------------------------------
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Debug("store opened", "driver", cfg.StoreDriver)

	// --- Services ---------------------------------------------------------
	clk := clock.Real()
	db := repo.NewDatabaseRepo(repo.NewLoggingStore(store, logger), clk, logger)
	app := cli.New(cli.Services{
		Repo:    db,
		Auth:    service.NewAuthService(db, clk, cfg.DevBypassAuth),
		Profile: service.NewProfileService(db),
		Groups:  service.NewGroupService(db, clk),
		Trips:   service.NewTripService(db, clk),
		Browse:  service.NewBrowseService(db, clk),
		Export:  service.NewExportService(db),
	}, os.Stdout, os.Stderr)

	return app.Run(ctx, args)
}

// openStore builds the KeyStore selected by cfg.StoreDriver. The returned
// func releases it.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (repo.KeyStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return repo.NewMemoryStore(), func() {}, nil

	case config.DriverPostgres:
		// pgxpool.New does not connect; the Ping does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		// goose needs a *sql.DB; borrow one backed by the same pool.
		sqlDB := stdlib.OpenDBFromPool(pool)
		applied, err := migrations.Up(ctx, sqlDB)
		sqlDB.Close()
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		if applied > 0 {
			logger.Info("migrations applied", "count", applied)
		}
		return repo.NewPostgresStore(pool), pool.Close, nil

	default:
		s, err := repo.OpenSQLite(repo.SQLiteConfig{Path: cfg.SQLitePath, Logger: logger})
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				logger.Warn("close sqlite store", "error", err)
			}
		}, nil
	}
}
