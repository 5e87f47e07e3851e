package disclosure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/myrjola/podium/internal/errors"
	"github.com/myrjola/podium/internal/narrative"
	"github.com/myrjola/podium/internal/random"
)

const requestIDLength = 16

// DefaultFailure is shown when a failed request carries no player-facing message.
const DefaultFailure = "Failed to generate narrative"

var ErrRequestFailed = errors.NewSentinel("narrative request failed")

// Requestor fetches one raw narrative from the generation provider.
type Requestor interface {
	Request(ctx context.Context, mode narrative.Mode) (string, error)
}

// Observer is notified after every transition that changed the state.
type Observer func(ctx context.Context, from, to State) error

// Machine drives a State with player actions and isolates the single provider call.
//
// A Machine is owned by one session and is not safe for concurrent use.
type Machine struct {
	requestor Requestor
	logger    *slog.Logger
	observers []Observer
	state     State
}

func NewMachine(requestor Requestor, logger *slog.Logger, state State) *Machine {
	return &Machine{
		requestor: requestor,
		logger:    logger,
		observers: nil,
		state:     state,
	}
}

// Observe registers o to be called after each state change.
func (m *Machine) Observe(o Observer) {
	m.observers = append(m.observers, o)
}

func (m *Machine) State() State {
	return m.state
}

// SelectMode moves an idle session to Requesting and performs the provider request.
//
// Selecting a mode outside Idle is a no-op. A failed request returns the session to Idle and the returned error
// matches ErrRequestFailed.
func (m *Machine) SelectMode(ctx context.Context, mode narrative.Mode) error {
	if !mode.Valid() {
		return errors.Wrap(narrative.ErrInvalidMode, "select mode", slog.String("mode", string(mode)))
	}
	if m.state.Phase != Idle {
		m.logger.LogAttrs(ctx, slog.LevelDebug, "ignoring mode selection",
			slog.String("phase", m.state.Phase.String()))
		return nil
	}
	request, err := random.Letters(requestIDLength)
	if err != nil {
		return errors.Wrap(err, "generate request id")
	}
	if err = m.dispatch(ctx, ModeSelected{Mode: mode, Request: request}); err != nil {
		return err
	}

	raw, err := m.requestor.Request(ctx, mode)
	if err != nil {
		err = errors.Wrap(fmt.Errorf("%w: %w", ErrRequestFailed, err), "request narrative",
			slog.String("mode", string(mode)))
		m.logger.LogAttrs(ctx, slog.LevelWarn, "narrative request failed", errors.SlogError(err))
		failed := RequestFailed{Failure: FailureMessage(err), Request: request}
		if dispatchErr := m.dispatch(ctx, failed); dispatchErr != nil {
			return errors.Join(err, dispatchErr)
		}
		return err
	}

	return m.dispatch(ctx, RequestSucceeded{Raw: raw, Request: request})
}

// SubmitGuess reveals the narrative when the session is presenting and guess is not blank.
func (m *Machine) SubmitGuess(ctx context.Context, guess string) error {
	return m.dispatch(ctx, GuessSubmitted{Guess: guess})
}

// ToggleClues flips the clue visibility while presenting a narrative that has clues.
func (m *Machine) ToggleClues(ctx context.Context) error {
	return m.dispatch(ctx, CluesToggled{})
}

// Abort resets the session to Idle from any phase.
func (m *Machine) Abort(ctx context.Context) error {
	return m.dispatch(ctx, Aborted{})
}

func (m *Machine) dispatch(ctx context.Context, e Event) error {
	from := m.state
	to := Apply(from, e)
	if to == from {
		return nil
	}
	m.state = to
	m.logger.LogAttrs(ctx, slog.LevelInfo, "state transition",
		slog.String("from", from.Phase.String()),
		slog.String("phase", to.Phase.String()),
		slog.String("mode", string(to.Mode)),
	)
	for _, o := range m.observers {
		if err := o(ctx, from, to); err != nil {
			return errors.Wrap(err, "notify observer", slog.String("phase", to.Phase.String()))
		}
	}
	return nil
}

type playerMessenger interface {
	PlayerMessage() string
}

// FailureMessage returns the player-facing description of a failed request.
func FailureMessage(err error) string {
	var pm playerMessenger
	if errors.As(err, &pm) {
		return pm.PlayerMessage()
	}
	return DefaultFailure
}
