package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/lucakurth/techfinder-backend/internal/seed"
	"github.com/lucakurth/techfinder-backend/pkg/config"
	"github.com/lucakurth/techfinder-backend/pkg/db"
	"github.com/lucakurth/techfinder-backend/pkg/logger"
	"github.com/lucakurth/techfinder-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)
	inserted, err := seed.Run(ctx, dbClient, logg)
	if err != nil {
		logg.Error(ctx, "failed to seed catalog", err)
		os.Exit(1)
	}
	logg.Info(logg.WithField(ctx, "inserted", inserted), "catalog seed complete")
}
