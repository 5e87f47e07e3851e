package main

import (
	"context"
	"io"
	"testing"

	"github.com/myrjola/podium/internal/e2etest"
	"github.com/stretchr/testify/require"
)

const story = `SCENE
A manor at midnight. Lady Ashcombe lies still in the library.

SUSPECTS
The butler, the niece and the gardener.

CLUES
- a torn white glove

DECISION
Who is the killer?

REVEAL & PSYCHOLOGICAL BREAKDOWN
The butler did it. His loyalty curdled into resentment.`

// startServer starts the web server against a fake completion provider. env overrides the default environment.
func startServer(t *testing.T, provider *e2etest.Provider, env map[string]string) *e2etest.Server {
	t.Helper()
	vars := map[string]string{
		"PODIUM_ADDR":              "localhost:0",
		"PODIUM_SQLITE_URL":        ":memory:",
		"PODIUM_REQUEST_TIMEOUT":   "5s",
		"GROQ_API_KEY":             "gsk_test",
		"PODIUM_PROVIDER_BASE_URL": provider.URL(),
	}
	for k, v := range env {
		vars[k] = v
	}
	lookupEnv := func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	server, err := e2etest.StartServer(ctx, io.Discard, lookupEnv, run)
	require.NoError(t, err)
	return server
}

func startProvider(t *testing.T, content string) *e2etest.Provider {
	t.Helper()
	provider := e2etest.StartProvider(content)
	t.Cleanup(provider.Close)
	return provider
}
