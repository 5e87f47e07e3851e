// Package disclosure gates which sections of a generated narrative the player can see.
package disclosure

import (
	"strings"

	"github.com/myrjola/podium/internal/narrative"
)

// Phase is the session's position in the disclosure loop.
type Phase int

const (
	Idle Phase = iota
	Requesting
	Presenting
	Revealed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Requesting:
		return "requesting"
	case Presenting:
		return "presenting"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// State is the disclosure state of one player session. The zero value is Idle.
type State struct {
	Phase Phase
	// Mode is the selected mode from Requesting until the session is reset.
	Mode narrative.Mode
	// Request identifies the provider call started by the last mode selection. Outcomes of other calls are
	// ignored.
	Request  string
	Document *narrative.Document
	// Guess is set on the transition into Revealed.
	Guess string
	// CluesVisible is a display flag that never affects the phase.
	CluesVisible bool
	// Failure describes the last failed request while back in Idle.
	Failure string
}

// Event is something the player or the requestor did.
type Event interface {
	event()
}

type (
	ModeSelected struct {
		Mode    narrative.Mode
		Request string
	}
	RequestSucceeded struct {
		Raw     string
		Request string
	}
	RequestFailed struct {
		Failure string
		Request string
	}
	GuessSubmitted struct{ Guess string }
	Aborted        struct{}
	CluesToggled   struct{}
)

func (ModeSelected) event()     {}
func (RequestSucceeded) event() {}
func (RequestFailed) event()    {}
func (GuessSubmitted) event()   {}
func (Aborted) event()          {}
func (CluesToggled) event()     {}

// Apply returns the state after e. Events that are not valid in the current phase leave s unchanged.
func Apply(s State, e Event) State {
	switch e := e.(type) {
	case ModeSelected:
		if s.Phase != Idle || !e.Mode.Valid() {
			return s
		}
		return State{Phase: Requesting, Mode: e.Mode, Request: e.Request} //nolint:exhaustruct // fresh request
	case RequestSucceeded:
		if s.Phase != Requesting || s.Request != e.Request {
			return s
		}
		doc := narrative.Partition(e.Raw)
		doc.Mode = s.Mode
		//nolint:exhaustruct // clues start hidden
		return State{Phase: Presenting, Mode: s.Mode, Request: s.Request, Document: &doc}
	case RequestFailed:
		if s.Phase != Requesting || s.Request != e.Request {
			return s
		}
		return State{Failure: e.Failure} //nolint:exhaustruct // back to idle
	case GuessSubmitted:
		guess := strings.TrimSpace(e.Guess)
		if s.Phase != Presenting || guess == "" {
			return s
		}
		s.Phase = Revealed
		s.Guess = guess
		return s
	case Aborted:
		return State{} //nolint:exhaustruct // idle
	case CluesToggled:
		if s.Phase != Presenting || !s.Document.HasClues() {
			return s
		}
		s.CluesVisible = !s.CluesVisible
		return s
	default:
		return s
	}
}
