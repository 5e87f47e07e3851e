package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/myrjola/podium/internal/e2etest"
	"github.com/myrjola/podium/internal/narrative"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const story = `SCENE
A manor at midnight. Lady Ashcombe lies still in the library.

CLUES
- a torn white glove

DECISION
Who is the killer?

REVEAL & PSYCHOLOGICAL BREAKDOWN
The butler did it.`

func execute(t *testing.T, env map[string]string, stdin string, args ...string) (string, error) {
	t.Helper()
	lookupEnv := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	var out bytes.Buffer
	cmd := newRootCmd(lookupEnv)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--style", "ascii"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func providerEnv(t *testing.T, provider *e2etest.Provider) map[string]string {
	t.Helper()
	t.Cleanup(provider.Close)
	return map[string]string{
		"GROQ_API_KEY":             "gsk_test",
		"PODIUM_PROVIDER_BASE_URL": provider.URL(),
	}
}

func TestPlay(t *testing.T) {
	provider := e2etest.StartProvider(story)
	env := providerEnv(t, provider)

	out, err := execute(t, env, "2\n?\n\nThe butler\nn\n", "play")
	require.NoError(t, err)

	assert.Contains(t, out, "MORIARTY")
	assert.Contains(t, out, "Lady Ashcombe")
	assert.Contains(t, out, "torn white glove")
	assert.Contains(t, out, "You accused The butler.")
	assert.Contains(t, out, "The butler did it.")
	assert.Contains(t, out, "Case closed.")

	requests := provider.Requests()
	require.Len(t, requests, 1)
	assert.Contains(t, requests[0].Messages[0].Content, "MODE: Dark Manipulation")
}

func TestPlay_revealOnlyAfterGuess(t *testing.T) {
	provider := e2etest.StartProvider(story)
	env := providerEnv(t, provider)

	// The input ends before an accusation is made.
	out, err := execute(t, env, "1\n", "play")
	require.NoError(t, err)
	assert.Contains(t, out, "Lady Ashcombe")
	assert.NotContains(t, out, "The butler did it.")
	assert.NotContains(t, out, "torn white glove")
}

func TestPlay_presetModeAndFailure(t *testing.T) {
	provider := e2etest.StartProvider(story)
	provider.Respond(http.StatusInternalServerError, "")
	env := providerEnv(t, provider)

	out, err := execute(t, env, "q\n", "play", "--mode", "manipulation")
	require.NoError(t, err)
	assert.Contains(t, out, "Setting the stage for SHERLOCK")
	assert.Contains(t, out, "Failed to generate narrative")
	assert.Len(t, provider.Requests(), 1)
}

func TestPlay_missingCredential(t *testing.T) {
	provider := e2etest.StartProvider(story)
	env := providerEnv(t, provider)
	delete(env, "GROQ_API_KEY")

	out, err := execute(t, env, "1\nq\n", "play")
	require.NoError(t, err)
	assert.Contains(t, out, "GROQ_API_KEY")
	assert.Empty(t, provider.Requests())
}

func TestPlay_invalidModeFlag(t *testing.T) {
	_, err := execute(t, map[string]string{}, "", "play", "--mode", "noir")
	require.ErrorContains(t, err, "invalid mode")
}

func TestPartition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.md")
	require.NoError(t, os.WriteFile(path, []byte(story), 0o600))

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  []string
	}{
		{
			name: "file",
			args: []string{"partition", path, "--raw"},
			want: []string{
				"# Scene\n\nSCENE\nA manor at midnight.",
				"# Detective notes\n\nCLUES\n- a torn white glove",
				"# Reveal\n\nREVEAL & PSYCHOLOGICAL BREAKDOWN\nThe butler did it.",
			},
		},
		{
			name:  "stdin",
			stdin: story,
			args:  []string{"partition"},
			want:  []string{"Scene", "Detective notes", "torn white glove", "The butler did it."},
		},
		{
			name:  "without marker",
			stdin: "Just a scene.",
			args:  []string{"partition", "--raw"},
			want:  []string{"# Scene\n\nJust a scene.", "# Reveal\n\n" + narrative.RevealUnavailable},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, nil, tt.stdin, tt.args...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}
