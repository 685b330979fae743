// Command cleanup purges archived practice attempts once they are older than
// retention.archived_attempt_days. Schedule it from cron; the server never
// purges on its own.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/shadowing-backend/internal/adapter/postgres"
	"github.com/heartmarshall/shadowing-backend/internal/adapter/postgres/practicesession"
	"github.com/heartmarshall/shadowing-backend/internal/app"
	"github.com/heartmarshall/shadowing-backend/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("archived attempt cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	cutoff := time.Now().UTC().Add(-cfg.Retention.ArchivedAttemptTTL())

	purged, err := practicesession.New(pool).DeleteArchivedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge attempts archived before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	logger.Info("archived attempts purged",
		slog.Int64("purged", purged),
		slog.Time("cutoff", cutoff),
		slog.Int("retention_days", cfg.Retention.ArchivedAttemptDays),
	)
	return nil
}
