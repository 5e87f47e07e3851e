package main

import (
	"net/http"

	"github.com/myrjola/podium/internal/disclosure"
	"github.com/myrjola/podium/internal/narrative"
)

type modeCard struct {
	Mode    narrative.Mode
	Title   string
	Tagline string
}

type homeTemplateData struct {
	Phase        string
	Mode         narrative.Mode
	Modes        []modeCard
	Failure      string
	Scene        string
	Clues        string
	HasClues     bool
	CluesVisible bool
	Reveal       string
	Guess        string
}

func newHomeTemplateData(state disclosure.State) homeTemplateData {
	data := homeTemplateData{ //nolint:exhaustruct // document fields are filled below
		Phase:        state.Phase.String(),
		Mode:         state.Mode,
		Failure:      state.Failure,
		CluesVisible: state.CluesVisible,
		Guess:        state.Guess,
	}
	for _, m := range narrative.Modes {
		data.Modes = append(data.Modes, modeCard{Mode: m, Title: m.Title(), Tagline: m.Tagline()})
	}
	if doc := state.Document; doc != nil {
		data.Scene = doc.Scene
		data.Clues = doc.Clues
		data.HasClues = doc.HasClues()
		// The reveal never reaches the page before the guess.
		if state.Phase == disclosure.Revealed {
			data.Reveal = doc.Reveal
		}
	}
	return data
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !app.sessionManager.Exists(ctx, disclosureSessionKey) {
		// Start the session in Idle so that the browser holds the session cookie before the first request.
		app.sessionManager.Put(ctx, disclosureSessionKey, disclosure.State{})
	}
	data := newHomeTemplateData(app.sessionState(ctx))
	app.render(w, r, http.StatusOK, "home", data)
}
