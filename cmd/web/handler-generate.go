package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/myrjola/podium/internal/ai"
	"github.com/myrjola/podium/internal/disclosure"
	"github.com/myrjola/podium/internal/errors"
	"github.com/myrjola/podium/internal/narrative"
)

type generateRequest struct {
	Mode string `json:"mode"`
}

type generateResponse struct {
	Content string `json:"content"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// generate requests one narrative and returns the raw provider output without partitioning it.
func (app *application) generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelDebug, "malformed generate request",
			errors.SlogError(errors.Wrap(err, "decode request")))
		app.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: disclosure.DefaultFailure})
		return
	}

	mode, err := narrative.ParseMode(req.Mode)
	if err != nil {
		app.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "Invalid mode"})
		return
	}

	content, err := app.requestor.Request(ctx, mode)
	if err != nil {
		err = errors.Wrap(err, "generate narrative")
		level := slog.LevelError
		if errors.Is(err, ai.ErrMissingCredential) {
			level = slog.LevelWarn
		}
		app.logger.LogAttrs(ctx, level, "generate failed", errors.SlogError(err))
		app.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: disclosure.FailureMessage(err)})
		return
	}

	app.writeJSON(w, r, http.StatusOK, generateResponse{Content: content})
}
