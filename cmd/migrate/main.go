package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sitelabor/laborbook-backend-go/internal/config"
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/database"
	"github.com/sitelabor/laborbook-backend-go/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if err := run(cfg); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

// run keeps the deferred cleanups ahead of any process exit.
func run(cfg *config.Config) error {
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	applied, err := db.Migrate(ctx, migrations.FS)
	if err != nil {
		return fmt.Errorf("applied %v before failing: %w", applied, err)
	}

	slog.Info("migrations complete", "applied", len(applied))
	return nil
}
