package main

import (
	"io"
	"os"
	"strings"

	"github.com/myrjola/podium/internal/errors"
	"github.com/myrjola/podium/internal/narrative"
	"github.com/spf13/cobra"
)

// sectionsMarkdown lays out the partitions of doc as one markdown document.
func sectionsMarkdown(doc narrative.Document) string {
	var b strings.Builder
	b.WriteString("# Scene\n\n")
	b.WriteString(doc.Scene)
	if doc.HasClues() {
		b.WriteString("\n\n# Detective notes\n\n")
		b.WriteString(doc.Clues)
	}
	b.WriteString("\n\n# Reveal\n\n")
	b.WriteString(doc.Reveal)
	b.WriteString("\n")
	return b.String()
}

func newPartitionCmd(renderer func() markdownRenderer) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:     "partition [file]",
		GroupID: "story",
		Short:   "Split a saved narrative into its sections",
		Long:    `Reads a raw provider output from file, or stdin when no file is given, and prints its sections.`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				src io.Reader = cmd.InOrStdin()
				err error
			)
			if len(args) == 1 {
				var f *os.File
				if f, err = os.Open(args[0]); err != nil {
					return errors.Wrap(err, "open narrative")
				}
				defer func() {
					_ = f.Close()
				}()
				src = f
			}
			var b []byte
			if b, err = io.ReadAll(src); err != nil {
				return errors.Wrap(err, "read narrative")
			}

			md := sectionsMarkdown(narrative.Partition(string(b)))
			if raw {
				if _, err = io.WriteString(cmd.OutOrStdout(), md); err != nil {
					return errors.Wrap(err, "write sections")
				}
				return nil
			}
			return renderer().print(cmd.OutOrStdout(), md)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	return cmd
}
