package main

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/myrjola/podium/internal/ai"
	"github.com/myrjola/podium/internal/disclosure"
	"github.com/myrjola/podium/internal/envstruct"
	"github.com/myrjola/podium/internal/errors"
	"github.com/myrjola/podium/internal/logging"
	"github.com/myrjola/podium/internal/markdown"
	"github.com/myrjola/podium/internal/pprofserver"
	"github.com/myrjola/podium/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	requestor      disclosure.Requestor
	sessionManager *scs.SessionManager
	sessionLocks   *sessionLocks
	htmx           *htmx.HTMX
	markdown       *markdown.Renderer
	db             *sqlite.Database
	pageTemplates  map[string]*template.Template
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"PODIUM_ADDR" envDefault:"localhost:4000"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ephemeral in-memory database.
	SqliteURL string `env:"PODIUM_SQLITE_URL" envDefault:"./podium.sqlite"`
	// PprofAddr is the loopback address of the pprof server. Empty disables it.
	PprofAddr string `env:"PODIUM_PPROF_ADDR" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		err   error
		cfg   config
		aiCfg ai.Config
	)
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	if err = envstruct.Populate(&aiCfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate provider config")
	}

	if cfg.PprofAddr != "" {
		if _, err = pprofserver.Launch(ctx, cfg.PprofAddr, logger); err != nil {
			return errors.Wrap(err, "launch pprof server")
		}
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, cfg.SqliteURL, logger); err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close database",
				errors.SlogError(errors.Wrap(closeErr, "close database")))
		}
	}()

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 24*time.Hour) //nolint:mnd // daily
	sessionManager.Lifetime = 12 * time.Hour                                                  //nolint:mnd // half a day
	sessionManager.Cookie.Secure = true

	var pageTemplates map[string]*template.Template
	if pageTemplates, err = parsePageTemplates(); err != nil {
		return errors.Wrap(err, "parse page templates")
	}

	app := application{
		logger:         logger,
		requestor:      ai.NewClient(aiCfg, logger),
		sessionManager: sessionManager,
		sessionLocks:   newSessionLocks(),
		htmx:           htmx.New(),
		markdown:       markdown.NewRenderer(),
		db:             db,
		pageTemplates:  pageTemplates,
	}

	// The handler deadline has to outlive the provider call.
	handlerTimeout := aiCfg.RequestTimeout + 5*time.Second //nolint:mnd // margin for rendering
	if err = app.configureAndStartServer(ctx, cfg.Addr, handlerTimeout); err != nil {
		return errors.Wrap(err, "start server")
	}

	return nil
}

func main() {
	ctx := context.Background()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	})))

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failure loading .env", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
