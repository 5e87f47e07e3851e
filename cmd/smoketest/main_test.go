package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myrjola/podium/internal/e2etest"
	"github.com/stretchr/testify/require"
)

func TestSmokeTest(t *testing.T) {
	tests := []struct {
		name    string
		healthy int
		home    string
		wantErr bool
	}{
		{
			name:    "healthy with mode selection",
			healthy: http.StatusOK,
			home: `<main>` +
				`<form action="/investigation"><input name="csrf_token" value="t"><input name="mode" value="manipulation"></form>` +
				`<form action="/investigation"><input name="csrf_token" value="t"><input name="mode" value="dark_manipulation"></form>` +
				`</main>`,
			wantErr: false,
		},
		{
			name:    "unhealthy",
			healthy: http.StatusInternalServerError,
			home:    "",
			wantErr: true,
		},
		{
			name:    "missing mode",
			healthy: http.StatusOK,
			home:    `<form action="/investigation"><input name="csrf_token" value="t"><input name="mode" value="manipulation"></form>`,
			wantErr: true,
		},
		{
			name:    "missing csrf token",
			healthy: http.StatusOK,
			home: `<form action="/investigation"><input name="mode" value="manipulation"></form>` +
				`<form action="/investigation"><input name="mode" value="dark_manipulation"></form>`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /api/healthy", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.healthy)
			})
			mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.home))
			})
			server := httptest.NewServer(mux)
			t.Cleanup(server.Close)

			client, err := e2etest.NewClient(server.URL)
			require.NoError(t, err)
			err = smokeTest(client)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
