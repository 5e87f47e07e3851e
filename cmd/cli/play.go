package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/myrjola/podium/internal/ai"
	"github.com/myrjola/podium/internal/disclosure"
	"github.com/myrjola/podium/internal/envstruct"
	"github.com/myrjola/podium/internal/errors"
	"github.com/myrjola/podium/internal/narrative"
	"github.com/spf13/cobra"
	"github.com/tcnksm/go-input"
)

const (
	answerQuit   = "q"
	answerToggle = "?"
)

var errInputClosed = errors.NewSentinel("input closed")

// eofReader remembers when the underlying reader has been drained.
type eofReader struct {
	r   io.Reader
	eof bool
}

func (e *eofReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if errors.Is(err, io.EOF) {
		e.eof = true
	}
	return n, err //nolint:wrapcheck // io.Reader contract
}

type game struct {
	ui       *input.UI
	in       *eofReader
	out      io.Writer
	machine  *disclosure.Machine
	renderer markdownRenderer
	// shown is set once the scene of the current narrative is printed.
	shown bool
}

// ask prompts for one line until validate accepts it. An empty answer becomes def. A drained input yields
// errInputClosed.
func (g *game) ask(query string, def string, validate func(string) error) (string, error) {
	for {
		answer, err := g.ui.Ask(query, &input.Options{ //nolint:exhaustruct // defaults are applied here
			Required: false,
			Loop:     false,
		})
		if err != nil {
			return "", errors.Wrap(err, "ask", slog.String("query", query))
		}
		answer = strings.TrimSpace(answer)
		if answer == "" && g.in.eof {
			return "", errInputClosed
		}
		if answer == "" {
			answer = def
		}
		if validate == nil {
			return answer, nil
		}
		if err = validate(answer); err != nil {
			g.printf("%s\n", err.Error())
			continue
		}
		return answer, nil
	}
}

func (g *game) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(g.out, format, a...)
}

// chooseMode handles the Idle phase. It returns false when the player quits.
func (g *game) chooseMode(ctx context.Context, preset narrative.Mode) (bool, error) {
	state := g.machine.State()
	if state.Failure != "" {
		g.printf("\n%s\n", state.Failure)
	}

	mode := preset
	if mode == "" {
		var b strings.Builder
		b.WriteString("\nChoose your investigation:\n")
		for i, m := range narrative.Modes {
			fmt.Fprintf(&b, "  [%d] %s  %s\n", i+1, m.Title(), m.Tagline())
		}
		b.WriteString("  [q] quit")
		answer, err := g.ask(b.String(), "", func(answer string) error {
			if answer == answerQuit {
				return nil
			}
			for i := range narrative.Modes {
				if answer == fmt.Sprint(i+1) {
					return nil
				}
			}
			return errors.New("enter the number of a mode or q")
		})
		if err != nil {
			return false, err
		}
		if answer == answerQuit {
			return false, nil
		}
		for i, m := range narrative.Modes {
			if answer == fmt.Sprint(i+1) {
				mode = m
			}
		}
	}

	g.printf("\nSetting the stage for %s...\n", mode.Title())
	if err := g.machine.SelectMode(ctx, mode); err != nil && !errors.Is(err, disclosure.ErrRequestFailed) {
		return false, errors.Wrap(err, "select mode")
	}
	return true, nil
}

// investigate handles the Presenting phase.
func (g *game) investigate(ctx context.Context) error {
	state := g.machine.State()
	if !g.shown {
		if err := g.renderer.print(g.out, state.Document.Scene); err != nil {
			return err
		}
		g.shown = true
	}

	query := "\nWho is the killer? (q abandons the case)"
	if state.Document.HasClues() {
		query = "\nWho is the killer? (? toggles the detective notes, q abandons the case)"
	}
	answer, err := g.ask(query, "", nil)
	if err != nil {
		return err
	}

	switch answer {
	case answerQuit:
		g.shown = false
		return g.machine.Abort(ctx) //nolint:wrapcheck // annotated by the machine
	case answerToggle:
		if err = g.machine.ToggleClues(ctx); err != nil {
			return errors.Wrap(err, "toggle clues")
		}
		if !g.machine.State().CluesVisible {
			g.printf("Detective notes hidden.\n")
			return nil
		}
		return g.renderer.print(g.out, g.machine.State().Document.Clues)
	default:
		return g.machine.SubmitGuess(ctx, answer) //nolint:wrapcheck // annotated by the machine
	}
}

// reveal handles the Revealed phase. It returns false when the player is done.
func (g *game) reveal(ctx context.Context) (bool, error) {
	state := g.machine.State()
	g.printf("\nYou accused %s.\n", state.Guess)
	if err := g.renderer.print(g.out, state.Document.Reveal); err != nil {
		return false, err
	}

	answer, err := g.ask("\nAnother case? [Y/n]", "y", func(answer string) error {
		switch strings.ToLower(answer) {
		case "y", "n":
			return nil
		default:
			return errors.New("please enter 'y' or 'n'")
		}
	})
	if err != nil {
		return false, err
	}
	g.shown = false
	if err = g.machine.Abort(ctx); err != nil {
		return false, errors.Wrap(err, "abort")
	}
	return strings.EqualFold(answer, "y"), nil
}

func (g *game) run(ctx context.Context, preset narrative.Mode) error {
	for {
		var (
			more = true
			err  error
		)
		switch g.machine.State().Phase {
		case disclosure.Idle:
			more, err = g.chooseMode(ctx, preset)
			// A preset mode only starts the first investigation.
			preset = ""
		case disclosure.Presenting:
			err = g.investigate(ctx)
		case disclosure.Revealed:
			more, err = g.reveal(ctx)
		case disclosure.Requesting:
			// SelectMode returns only after the request has settled.
			err = errors.New("unexpected requesting phase")
		}
		if errors.Is(err, errInputClosed) {
			g.printf("\n")
			return nil
		}
		if err != nil {
			return err
		}
		if !more {
			g.printf("Case closed.\n")
			return nil
		}
	}
}

func newPlayCmd(
	lookupEnv func(string) (string, bool),
	logger func(*cobra.Command) *slog.Logger,
	renderer func() markdownRenderer,
) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:     "play",
		GroupID: "story",
		Short:   "Solve a generated case in the terminal",
		Long: `Generates a psychological detective story, shows the scene and asks for the killer.
The reveal and psychological breakdown follow the accusation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				preset narrative.Mode
				err    error
			)
			if mode != "" {
				if preset, err = narrative.ParseMode(mode); err != nil {
					return errors.Wrap(err, "mode flag")
				}
			}

			var cfg ai.Config
			if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
				return errors.Wrap(err, "populate ai config")
			}
			l := logger(cmd)
			in := &eofReader{r: cmd.InOrStdin(), eof: false}
			g := &game{
				ui:       &input.UI{Writer: cmd.OutOrStdout(), Reader: in},
				in:       in,
				out:      cmd.OutOrStdout(),
				machine:  disclosure.NewMachine(ai.NewClient(cfg, l), l, disclosure.State{}),
				renderer: renderer(),
				shown:    false,
			}
			return g.run(cmd.Context(), preset)
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "",
		fmt.Sprintf("start right away with mode %q or %q", narrative.Investigative, narrative.HighPressure))
	return cmd
}
