package cli

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mithrel/inkleaf/pkg/models"
)

// newNoteCmd defines the parent "note" command.
// Running "inkleaf note" without subcommands adds a note.
func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note [title]",
		Short: "Work with notes (default: add one)",
		Long: heredoc.Doc(`
			Work with notes. Without a subcommand, "note" adds a note: the
			arguments become its title, and with no arguments $EDITOR is opened
			on a new note.
		`),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			return addNote(cmd, title, "", title == "")
		},
	}

	cmd.AddCommand(newNoteAddCmd())
	cmd.AddCommand(newNoteEditCmd())
	cmd.AddCommand(newNoteShowCmd())
	cmd.AddCommand(newNoteListCmd())
	cmd.AddCommand(newNoteDeleteCmd())

	return cmd
}

func printNoteLine(cmd *cobra.Command, n models.Note) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", n.ID, n.DisplayTitle())
}
