package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/myrjola/podium/internal/errors"
)

type markdownRenderer struct {
	style string
}

// print renders markdown for the terminal and writes it to w.
func (r markdownRenderer) print(w io.Writer, markdown string) error {
	styled, err := glamour.Render(markdown, r.style)
	if err != nil {
		return errors.Wrap(err, "render markdown")
	}
	if _, err = fmt.Fprint(w, styled); err != nil {
		return errors.Wrap(err, "write rendered markdown")
	}
	return nil
}
