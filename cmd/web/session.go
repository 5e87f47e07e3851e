package main

import (
	"context"
	"encoding/gob"
	"log/slog"

	"github.com/myrjola/podium/internal/disclosure"
	"github.com/myrjola/podium/internal/errors"
)

const disclosureSessionKey = "disclosure"

func init() {
	gob.Register(disclosure.State{})
}

// sessionState returns the disclosure state loaded for this request. New sessions start in Idle.
func (app *application) sessionState(ctx context.Context) disclosure.State {
	state, ok := app.sessionManager.Get(ctx, disclosureSessionKey).(disclosure.State)
	if !ok {
		return disclosure.State{}
	}
	return state
}

// storedState reads the disclosure state committed to the session store, bypassing the copy loaded for this
// request. It sees changes made by concurrent requests of the same session.
func (app *application) storedState(ctx context.Context) (disclosure.State, bool, error) {
	token := app.sessionManager.Token(ctx)
	if token == "" {
		return disclosure.State{}, false, nil
	}
	b, found, err := app.sessionManager.Store.Find(token)
	if err != nil {
		return disclosure.State{}, false, errors.Wrap(err, "find session")
	}
	if !found {
		return disclosure.State{}, false, nil
	}
	_, values, err := app.sessionManager.Codec.Decode(b)
	if err != nil {
		return disclosure.State{}, false, errors.Wrap(err, "decode session")
	}
	state, _ := values[disclosureSessionKey].(disclosure.State)
	return state, true, nil
}

// persistState stores each transition and commits it right away so that other tabs see Requesting while the
// provider is generating. The session lock is released for the provider call and reacquired for its outcome.
func (app *application) persistState(ctx context.Context, from, to disclosure.State) error {
	held := sessionHeld(ctx)
	if from.Phase == disclosure.Requesting {
		held.relock()
		stored, found, err := app.storedState(ctx)
		if err != nil {
			return errors.Wrap(err, "read stored state")
		}
		if found && (stored.Phase != disclosure.Requesting || stored.Request != from.Request) {
			// The player aborted or started another investigation while the narrative was being generated.
			app.logger.LogAttrs(ctx, slog.LevelInfo, "discarding abandoned narrative",
				slog.String("phase", stored.Phase.String()))
			app.sessionManager.Put(ctx, disclosureSessionKey, stored)
			return nil
		}
	}
	app.sessionManager.Put(ctx, disclosureSessionKey, to)
	if _, _, err := app.sessionManager.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit session")
	}
	if to.Phase == disclosure.Requesting {
		held.unlock()
	}
	return nil
}

// machine drives the disclosure state of the session with the persisting observer attached.
func (app *application) machine(ctx context.Context) *disclosure.Machine {
	m := disclosure.NewMachine(app.requestor, app.logger, app.sessionState(ctx))
	m.Observe(app.persistState)
	return m
}
