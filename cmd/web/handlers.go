package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/myrjola/podium/internal/disclosure"
	"github.com/myrjola/podium/internal/errors"
	"github.com/myrjola/podium/internal/narrative"
)

func (app *application) selectMode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	mode, err := narrative.ParseMode(r.PostForm.Get("mode"))
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	// The narrative is generated and stored even if the client goes away.
	ctx := context.WithoutCancel(r.Context())
	if err = app.machine(ctx).SelectMode(ctx, mode); err != nil {
		if !errors.Is(err, disclosure.ErrRequestFailed) {
			app.serverError(w, r, errors.Wrap(err, "select mode"))
			return
		}
		// The failure is stored in the session and shown on the mode selection.
		app.logger.LogAttrs(ctx, slog.LevelDebug, "narrative request failed, showing failure")
	}

	app.respond(w, r)
}

func (app *application) submitGuess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if err := app.machine(ctx).SubmitGuess(ctx, r.PostForm.Get("guess")); err != nil {
		app.serverError(w, r, errors.Wrap(err, "submit guess"))
		return
	}
	app.respond(w, r)
}

func (app *application) toggleClues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := app.machine(ctx).ToggleClues(ctx); err != nil {
		app.serverError(w, r, errors.Wrap(err, "toggle clues"))
		return
	}
	app.respond(w, r)
}

func (app *application) abort(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := app.machine(ctx).Abort(ctx); err != nil {
		app.serverError(w, r, errors.Wrap(err, "abort"))
		return
	}
	app.respond(w, r)
}
