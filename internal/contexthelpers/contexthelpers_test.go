package contexthelpers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/myrjola/podium/internal/contexthelpers"
	"github.com/stretchr/testify/require"
)

func TestSetters(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	ctx := r.Context()
	require.Empty(t, contexthelpers.CurrentPath(ctx))
	require.Empty(t, contexthelpers.CSRFToken(ctx))
	require.Empty(t, contexthelpers.CSPNonce(ctx))
	require.False(t, contexthelpers.IsHTMXRequest(ctx))

	r = contexthelpers.SetCurrentPath(r, "/investigation")
	r = contexthelpers.SetCSRFToken(r, "token")
	r = contexthelpers.SetCSPNonce(r, "nonce")
	r = contexthelpers.SetHTMXRequest(r, true)
	ctx = r.Context()
	require.Equal(t, "/investigation", contexthelpers.CurrentPath(ctx))
	require.Equal(t, "token", contexthelpers.CSRFToken(ctx))
	require.Equal(t, "nonce", contexthelpers.CSPNonce(ctx))
	require.True(t, contexthelpers.IsHTMXRequest(ctx))
}
