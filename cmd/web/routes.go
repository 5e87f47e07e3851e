package main

import (
	"io/fs"
	"net/http"

	"github.com/donseba/go-htmx/middleware"
	"github.com/justinas/alice"
	"github.com/myrjola/podium/internal/errors"
	"github.com/myrjola/podium/ui"
)

func (app *application) routes() (http.Handler, error) {
	mux := http.NewServeMux()

	static, err := fs.Sub(ui.Files, "static")
	if err != nil {
		return nil, errors.Wrap(err, "static files")
	}
	mux.Handle("GET /static/", cacheForeverHeaders(http.StripPrefix("/static", http.FileServerFS(static))))

	mux.HandleFunc("GET /api/healthy", app.healthy)
	mux.HandleFunc("POST /api/generate", app.generate)

	session := alice.New(app.lockSession, app.sessionManager.LoadAndSave, middleware.MiddleWare, app.htmxContext)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("POST /investigation", session.ThenFunc(app.selectMode))
	mux.Handle("POST /investigation/guess", session.ThenFunc(app.submitGuess))
	mux.Handle("POST /investigation/clues", session.ThenFunc(app.toggleClues))
	mux.Handle("POST /investigation/abort", session.ThenFunc(app.abort))

	mux.HandleFunc("/", app.notFound)

	common := alice.New(app.recoverPanic, app.logRequest, secureHeaders, noSurf, commonContext)

	return common.Then(mux), nil
}
