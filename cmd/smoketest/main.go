package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/myrjola/podium/internal/e2etest"
	"github.com/myrjola/podium/internal/errors"
	"github.com/myrjola/podium/internal/logging"
)

// checkHealthy expects the health endpoint to answer 200.
func checkHealthy(ctx context.Context, client *e2etest.Client) error {
	resp, err := client.Get(ctx, "/api/healthy")
	if err != nil {
		return errors.Wrap(err, "get healthy")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return errors.New("unhealthy", slog.Int("status", resp.StatusCode))
	}
	return nil
}

// checkModeSelection expects the home page to offer both investigation modes with CSRF tokens.
func checkModeSelection(ctx context.Context, client *e2etest.Client) error {
	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "get home")
	}
	modes := doc.Find("form[action='/investigation'] input[name=mode]")
	if modes.Length() != 2 { //nolint:mnd // SHERLOCK and MORIARTY
		return errors.New("mode selection not found", slog.Int("modes", modes.Length()))
	}
	if doc.Find("form[action='/investigation'] input[name=csrf_token]").Length() != modes.Length() {
		return errors.New("csrf token missing from mode selection")
	}
	return nil
}

func smokeTest(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	if err := checkHealthy(ctx, client); err != nil {
		return errors.Wrap(err, "check healthy")
	}
	if err := checkModeSelection(ctx, client); err != nil {
		return errors.Wrap(err, "check mode selection")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = smokeTest(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "smoke test failed", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
