package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/podium/internal/envstruct"
	"github.com/myrjola/podium/internal/errors"
	"github.com/myrjola/podium/internal/sqlite"
	"github.com/myrjola/podium/internal/testhelpers"
)

type config struct {
	SqliteURL string `env:"PODIUM_SQLITE_URL"`
}

// checkMigrated migrates the database at cfg.SqliteURL to the current schema and verifies the session store.
func checkMigrated(ctx context.Context, logger *slog.Logger, cfg config) error {
	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "new database", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		_ = db.Close()
	}()

	var indexes int
	if err = db.ReadOnly.GetContext(ctx, &indexes,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'sessions_expiry_idx'`); err != nil {
		return errors.Wrap(err, "query session index")
	}
	if indexes != 1 {
		return errors.New("session expiry index missing")
	}

	// Live sessions survive the migration.
	var sessions int
	if err = db.ReadOnly.GetContext(ctx, &sessions,
		`SELECT COUNT(*) FROM sessions WHERE expiry > julianday('now')`); err != nil {
		return errors.Wrap(err, "count sessions")
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "live session count", slog.Int("count", sessions))
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err    error
		start  = time.Now()
		ctx    context.Context
		cancel context.CancelFunc
		cfg    config
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if err = envstruct.Populate(&cfg, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "PODIUM_SQLITE_URL not set", errors.SlogError(err))
		os.Exit(1)
	}

	if err = checkMigrated(ctx, logger, cfg); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "migration test failed", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}
