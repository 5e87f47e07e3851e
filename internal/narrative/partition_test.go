package narrative_test

import (
	"strings"
	"testing"

	"github.com/myrjola/podium/internal/narrative"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantScene  string
		wantClues  string
		wantReveal string
	}{
		{
			name:       "reveal marker splits scene and reveal",
			raw:        "Intro text\nREVEAL & PSYCHOLOGICAL BREAKDOWN\nThe butler did it.",
			wantScene:  "Intro text",
			wantReveal: "REVEAL & PSYCHOLOGICAL BREAKDOWN\nThe butler did it.",
		},
		{
			name:       "missing reveal marker keeps everything as scene",
			raw:        "  The fog rolls in.\nNobody confesses.\n",
			wantScene:  "The fog rolls in.\nNobody confesses.",
			wantReveal: narrative.RevealUnavailable,
		},
		{
			name:       "empty",
			raw:        "",
			wantScene:  "",
			wantReveal: narrative.RevealUnavailable,
		},
		{
			name:       "whitespace only",
			raw:        " \n\t ",
			wantScene:  "",
			wantReveal: narrative.RevealUnavailable,
		},
		{
			name:       "markdown heading reveal is normalized",
			raw:        "Intro\n## REVEAL & PSYCHOLOGICAL BREAKDOWN\nIt was the gardener.",
			wantScene:  "Intro",
			wantReveal: "REVEAL & PSYCHOLOGICAL BREAKDOWN\nIt was the gardener.",
		},
		{
			name:       "bold reveal is normalized case-insensitively",
			raw:        "Intro\n**reveal & PSYCHOLOGICAL BREAKDOWN**\nIt was the gardener.",
			wantScene:  "Intro",
			wantReveal: "REVEAL & PSYCHOLOGICAL BREAKDOWN**\nIt was the gardener.",
		},
		{
			name:       "reveal marker itself is case-sensitive",
			raw:        "Intro\nReveal & psychological breakdown\nIt was the gardener.",
			wantScene:  "Intro\nReveal & psychological breakdown\nIt was the gardener.",
			wantReveal: narrative.RevealUnavailable,
		},
		{
			name:       "first reveal marker wins",
			raw:        "A\nREVEAL & PSYCHOLOGICAL BREAKDOWN\nB\nREVEAL & PSYCHOLOGICAL BREAKDOWN\nC",
			wantScene:  "A",
			wantReveal: "REVEAL & PSYCHOLOGICAL BREAKDOWN\nB\nREVEAL & PSYCHOLOGICAL BREAKDOWN\nC",
		},
		{
			name:       "clues before decision are extracted",
			raw:        "A\nCLUES\nsecret\nDECISION\nend",
			wantScene:  "A\n\nDECISION\nend",
			wantClues:  "CLUES\nsecret",
			wantReveal: narrative.RevealUnavailable,
		},
		{
			name:       "decision before clues leaves scene unchanged",
			raw:        "A\nDECISION\nend\nCLUES\nsecret",
			wantScene:  "A\nDECISION\nend\nCLUES\nsecret",
			wantReveal: narrative.RevealUnavailable,
		},
		{
			name:       "clues without decision leaves scene unchanged",
			raw:        "A\nCLUES\nsecret",
			wantScene:  "A\nCLUES\nsecret",
			wantReveal: narrative.RevealUnavailable,
		},
		{
			name:       "bold markers",
			raw:        "Scene **CLUES** a torn glove **DECISION** who?",
			wantScene:  "Scene\n\n**DECISION** who?",
			wantClues:  "**CLUES** a torn glove",
			wantReveal: narrative.RevealUnavailable,
		},
		{
			name: "plain headings",
			raw: "SCENE\nA manor.\nSUSPECTS\nThe butler.\nCLUES\n- a glove\nDECISION\nWho did it?\n" +
				"REVEAL & PSYCHOLOGICAL BREAKDOWN\nThe butler.",
			wantScene:  "SCENE\nA manor.\nSUSPECTS\nThe butler.\n\nDECISION\nWho did it?",
			wantClues:  "CLUES\n- a glove",
			wantReveal: "REVEAL & PSYCHOLOGICAL BREAKDOWN\nThe butler.",
		},
		{
			// "CLUES\n" is tried before "## CLUES" so the heading hashes stay behind.
			name: "markdown headings",
			raw: "## SCENE\nA manor.\n## SUSPECTS\nThe butler.\n## CLUES\n- a glove\n## DECISION\nWho did it?\n" +
				"## REVEAL & PSYCHOLOGICAL BREAKDOWN\nThe butler.",
			wantScene:  "## SCENE\nA manor.\n## SUSPECTS\nThe butler.\n##\n\nDECISION\nWho did it?",
			wantClues:  "CLUES\n- a glove\n##",
			wantReveal: "REVEAL & PSYCHOLOGICAL BREAKDOWN\nThe butler.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := narrative.Partition(tt.raw)
			assert.Equal(t, tt.raw, doc.Raw)
			assert.Equal(t, tt.wantScene, doc.Scene)
			assert.Equal(t, tt.wantClues, doc.Clues)
			assert.Equal(t, tt.wantClues != "", doc.HasClues())
			assert.Equal(t, tt.wantReveal, doc.Reveal)
		})
	}
}

func TestPartition_markerOnce(t *testing.T) {
	prefixes := []string{"", "x", "Scene\n\nSuspects: Ada, Bob\n", "  padded  \n"}
	suffixes := []string{"", "\nThe butler.", "\n\nLong reveal\nwith lines\n  "}
	for _, prefix := range prefixes {
		for _, suffix := range suffixes {
			raw := prefix + narrative.RevealMarker + suffix
			i := strings.Index(raw, narrative.RevealMarker)
			doc := narrative.Partition(raw)
			require.Equal(t, strings.TrimSpace(raw[:i]), doc.Scene)
			require.Equal(t, strings.TrimSpace(raw[i:]), doc.Reveal)
		}
	}
}

func TestPartition_repartitionHasNoArtifacts(t *testing.T) {
	raws := []string{
		"Intro text\nREVEAL & PSYCHOLOGICAL BREAKDOWN\nThe butler did it.",
		"A\nCLUES\nsecret\nDECISION\nend\n## REVEAL & PSYCHOLOGICAL BREAKDOWN\nB",
		"No structure at all.",
	}
	for _, raw := range raws {
		first := narrative.Partition(raw)
		if first.Reveal == narrative.RevealUnavailable {
			again := narrative.Partition(first.Scene)
			require.Equal(t, first.Scene, again.Scene)
			require.Equal(t, narrative.RevealUnavailable, again.Reveal)
			continue
		}
		again := narrative.Partition(first.Scene + "\n\n" + first.Reveal)
		require.Equal(t, first.Scene, again.Scene, raw)
		require.Equal(t, first.Reveal, again.Reveal, raw)
	}
}

func TestParseMode(t *testing.T) {
	m, err := narrative.ParseMode("manipulation")
	require.NoError(t, err)
	require.Equal(t, narrative.Investigative, m)
	require.Equal(t, "SHERLOCK", m.Title())

	m, err = narrative.ParseMode("dark_manipulation")
	require.NoError(t, err)
	require.Equal(t, narrative.HighPressure, m)
	require.Equal(t, "MORIARTY", m.Title())

	for _, bad := range []string{"", "MANIPULATION", "chaos"} {
		_, err = narrative.ParseMode(bad)
		require.ErrorIs(t, err, narrative.ErrInvalidMode)
	}
}
