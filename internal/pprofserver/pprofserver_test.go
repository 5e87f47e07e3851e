package pprofserver_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/myrjola/podium/internal/pprofserver"
	"github.com/myrjola/podium/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestLaunch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	addr, err := pprofserver.Launch(ctx, "localhost:0", testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/debug/pprof/cmdline", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
