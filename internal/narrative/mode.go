package narrative

import (
	"log/slog"

	"github.com/myrjola/podium/internal/errors"
)

// Mode selects the tone of the generated narrative.
type Mode string

const (
	// Investigative is the classic deduction profile.
	Investigative Mode = "manipulation"
	// HighPressure is the dark, high-stakes profile.
	HighPressure Mode = "dark_manipulation"
)

var ErrInvalidMode = errors.NewSentinel("invalid mode")

// Modes lists the selectable modes in presentation order.
var Modes = []Mode{Investigative, HighPressure}

// ParseMode returns the Mode matching the wire value s.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", errors.Wrap(ErrInvalidMode, "parse mode", slog.String("mode", s))
	}
	return m, nil
}

func (m Mode) Valid() bool {
	return m == Investigative || m == HighPressure
}

// Title is the player-facing name of the mode.
func (m Mode) Title() string {
	switch m {
	case Investigative:
		return "SHERLOCK"
	case HighPressure:
		return "MORIARTY"
	default:
		return ""
	}
}

// Tagline is a short description shown next to the title.
func (m Mode) Tagline() string {
	switch m {
	case Investigative:
		return "Read the room. Catch the lie. Name the culprit."
	case HighPressure:
		return "Everyone is playing you. Play them back."
	default:
		return ""
	}
}
