package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/myrjola/podium/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestCheckMigrated(t *testing.T) {
	ctx := context.Background()
	logger := testhelpers.NewLogger(io.Discard)
	cfg := config{SqliteURL: filepath.Join(t.TempDir(), "podium.sqlite")}

	require.NoError(t, checkMigrated(ctx, logger, cfg))
	// The second run finds the schema in place.
	require.NoError(t, checkMigrated(ctx, logger, cfg))
}
