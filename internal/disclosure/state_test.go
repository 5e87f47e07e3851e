package disclosure_test

import (
	"testing"

	"github.com/myrjola/podium/internal/disclosure"
	"github.com/myrjola/podium/internal/narrative"
	"github.com/stretchr/testify/require"
)

const butlerStory = "Intro text\nREVEAL & PSYCHOLOGICAL BREAKDOWN\nThe butler did it."

func presenting(raw string) disclosure.State {
	doc := narrative.Partition(raw)
	doc.Mode = narrative.Investigative
	return disclosure.State{Phase: disclosure.Presenting, Mode: narrative.Investigative, Document: &doc}
}

func TestApply(t *testing.T) {
	withClues := presenting("A\nCLUES\nsecret\nDECISION\nend")
	revealed := presenting(butlerStory)
	revealed.Phase = disclosure.Revealed
	revealed.Guess = "Butler"

	tests := []struct {
		name  string
		state disclosure.State
		event disclosure.Event
		want  disclosure.State
	}{
		{
			name:  "idle selects mode",
			state: disclosure.State{Failure: "previous failure"},
			event: disclosure.ModeSelected{Mode: narrative.HighPressure, Request: "r1"},
			want:  disclosure.State{Phase: disclosure.Requesting, Mode: narrative.HighPressure, Request: "r1"},
		},
		{
			name:  "invalid mode is ignored",
			state: disclosure.State{},
			event: disclosure.ModeSelected{Mode: "chaos"},
			want:  disclosure.State{},
		},
		{
			name:  "mode selection while requesting is ignored",
			state: disclosure.State{Phase: disclosure.Requesting, Mode: narrative.Investigative},
			event: disclosure.ModeSelected{Mode: narrative.HighPressure},
			want:  disclosure.State{Phase: disclosure.Requesting, Mode: narrative.Investigative},
		},
		{
			name:  "mode selection while presenting is ignored",
			state: withClues,
			event: disclosure.ModeSelected{Mode: narrative.HighPressure},
			want:  withClues,
		},
		{
			name:  "failed request returns to idle",
			state: disclosure.State{Phase: disclosure.Requesting, Mode: narrative.Investigative},
			event: disclosure.RequestFailed{Failure: "Failed to generate narrative"},
			want:  disclosure.State{Failure: "Failed to generate narrative"},
		},
		{
			name:  "success of an abandoned request is ignored",
			state: disclosure.State{Phase: disclosure.Requesting, Mode: narrative.Investigative, Request: "r2"},
			event: disclosure.RequestSucceeded{Raw: butlerStory, Request: "r1"},
			want:  disclosure.State{Phase: disclosure.Requesting, Mode: narrative.Investigative, Request: "r2"},
		},
		{
			name:  "failure of an abandoned request is ignored",
			state: disclosure.State{Phase: disclosure.Requesting, Mode: narrative.Investigative, Request: "r2"},
			event: disclosure.RequestFailed{Failure: "Failed to generate narrative", Request: "r1"},
			want:  disclosure.State{Phase: disclosure.Requesting, Mode: narrative.Investigative, Request: "r2"},
		},
		{
			name:  "success outside requesting is ignored",
			state: disclosure.State{},
			event: disclosure.RequestSucceeded{Raw: butlerStory},
			want:  disclosure.State{},
		},
		{
			name:  "empty guess",
			state: withClues,
			event: disclosure.GuessSubmitted{Guess: ""},
			want:  withClues,
		},
		{
			name:  "blank guess",
			state: withClues,
			event: disclosure.GuessSubmitted{Guess: "   "},
			want:  withClues,
		},
		{
			name:  "guess while idle",
			state: disclosure.State{},
			event: disclosure.GuessSubmitted{Guess: "Butler"},
			want:  disclosure.State{},
		},
		{
			name:  "guess after reveal is ignored",
			state: revealed,
			event: disclosure.GuessSubmitted{Guess: "Maid"},
			want:  revealed,
		},
		{
			name:  "abort from revealed",
			state: revealed,
			event: disclosure.Aborted{},
			want:  disclosure.State{},
		},
		{
			name:  "abort from requesting",
			state: disclosure.State{Phase: disclosure.Requesting, Mode: narrative.Investigative},
			event: disclosure.Aborted{},
			want:  disclosure.State{},
		},
		{
			name:  "abort from presenting",
			state: withClues,
			event: disclosure.Aborted{},
			want:  disclosure.State{},
		},
		{
			name:  "abort from idle clears failure",
			state: disclosure.State{Failure: "boom"},
			event: disclosure.Aborted{},
			want:  disclosure.State{},
		},
		{
			name:  "toggling clues without clues is ignored",
			state: revealed,
			event: disclosure.CluesToggled{},
			want:  revealed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, disclosure.Apply(tt.state, tt.event))
		})
	}
}

func TestApply_requestSucceeded(t *testing.T) {
	s := disclosure.Apply(disclosure.State{}, disclosure.ModeSelected{Mode: narrative.Investigative})
	s = disclosure.Apply(s, disclosure.RequestSucceeded{Raw: butlerStory})

	require.Equal(t, disclosure.Presenting, s.Phase)
	require.NotNil(t, s.Document)
	require.Equal(t, narrative.Investigative, s.Document.Mode)
	require.Equal(t, "Intro text", s.Document.Scene)
	require.Equal(t, "REVEAL & PSYCHOLOGICAL BREAKDOWN\nThe butler did it.", s.Document.Reveal)
	require.Empty(t, s.Guess)

	s = disclosure.Apply(s, disclosure.GuessSubmitted{Guess: "  Butler \n"})
	require.Equal(t, disclosure.Revealed, s.Phase)
	require.Equal(t, "Butler", s.Guess)
}

func TestApply_cluesToggle(t *testing.T) {
	s := presenting("A\nCLUES\nsecret\nDECISION\nend")
	require.False(t, s.CluesVisible)

	s = disclosure.Apply(s, disclosure.CluesToggled{})
	require.True(t, s.CluesVisible)
	require.Equal(t, disclosure.Presenting, s.Phase)

	s = disclosure.Apply(s, disclosure.CluesToggled{})
	require.False(t, s.CluesVisible)
}
