package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/myrjola/podium/internal/contexthelpers"
	"github.com/myrjola/podium/internal/errors"
	"github.com/myrjola/podium/ui"
)

// htmxFragment is the template rendered for htmx requests instead of the full page.
const htmxFragment = "stage"

// parsePageTemplates parses every page directory inside ui/templates/pages together with the base template.
//
// Each page has to include a template named "page".
func parsePageTemplates() (map[string]*template.Template, error) {
	pageDirs, err := fs.ReadDir(ui.Files, "templates/pages")
	if err != nil {
		return nil, errors.Wrap(err, "read pages directory")
	}
	pages := make(map[string]*template.Template, len(pageDirs))
	for _, dir := range pageDirs {
		name := dir.Name()
		// We need to initialize the FuncMap before parsing the files. These will be overridden in the render function.
		t, parseErr := template.New(name).Funcs(template.FuncMap{
			"nonce": func() template.HTMLAttr {
				panic("not implemented")
			},
			"csrf": func() template.HTML {
				panic("not implemented")
			},
			"markdown": func(string) (template.HTML, error) {
				panic("not implemented")
			},
		}).ParseFS(ui.Files, "templates/base.gohtml", fmt.Sprintf("templates/pages/%s/*.gohtml", name))
		if parseErr != nil {
			return nil, errors.Wrap(parseErr, "parse page template", slog.String("page", name))
		}
		pages[name] = t
	}
	return pages, nil
}

func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var (
		err error
		t   *template.Template
	)

	parsed, ok := app.pageTemplates[page]
	if !ok {
		app.serverError(w, r, errors.New("page template not found", slog.String("template", page)))
		return
	}
	if t, err = parsed.Clone(); err != nil {
		app.serverError(w, r, errors.Wrap(err, "clone template", slog.String("template", page)))
		return
	}

	buf := new(bytes.Buffer)
	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=\"%s\"", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>",
		template.HTMLEscapeString(contexthelpers.CSRFToken(ctx)))
	t.Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // we trust the nonce since it's not provided by user.
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // the token is escaped above.
		},
		"markdown": app.markdown.HTML,
	})

	name := "base"
	if contexthelpers.IsHTMXRequest(ctx) && t.Lookup(htmxFragment) != nil {
		name = htmxFragment
	}
	if err = t.ExecuteTemplate(buf, name, data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template", slog.String("template", page)))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}
