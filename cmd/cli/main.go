package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/podium/internal/errors"
	"github.com/myrjola/podium/internal/logging"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. lookupEnv has the same signature as [os.LookupEnv].
func newRootCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	var (
		verbose bool
		style   string
	)
	rootCmd := &cobra.Command{
		Use:           "podium-cli",
		Short:         "Psychological detective stories in the terminal",
		Long:          `Command line utilities for Podium https://github.com/myrjola/podium`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log state transitions and provider calls")
	rootCmd.PersistentFlags().StringVar(&style, "style", "dark", "glamour style used to render markdown (dark, light, notty, ascii)")

	logger := func(cmd *cobra.Command) *slog.Logger {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(logging.NewContextHandler(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			AddSource:   false,
			Level:       level,
			ReplaceAttr: nil,
		})))
	}
	renderer := func() markdownRenderer { return markdownRenderer{style: style} }

	rootCmd.AddGroup(&cobra.Group{ID: "story", Title: "Story commands"})
	rootCmd.AddCommand(newPlayCmd(lookupEnv, logger, renderer))
	rootCmd.AddCommand(newPartitionCmd(renderer))
	return rootCmd
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd(os.LookupEnv).ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
