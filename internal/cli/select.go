package cli

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mithrel/inkleaf/internal/present/format"
	"github.com/mithrel/inkleaf/internal/selection"
	"github.com/mithrel/inkleaf/internal/session"
	"github.com/mithrel/inkleaf/pkg/models"
)

func newSelectCmd() *cobra.Command {
	var toggle, clear, show, asJSON bool
	cmd := &cobra.Command{
		Use:   "select [id]",
		Short: "Change which notes are selected",
		Long: heredoc.Doc(`
			Select a note. A plain select makes the note the single active one.
			--toggle adds or removes it from a multi-selection, which
			"inkleaf note delete" removes in one go. --clear empties the
			selection and --show prints it.
		`),
		Example: heredoc.Doc(`
			inkleaf select 3f2a
			inkleaf select --toggle 3f2a
			inkleaf select --toggle 9c1e
			inkleaf note delete
		`),
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeNoteIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			ctx := cmd.Context()
			switch {
			case clear:
				if len(args) > 0 {
					return fmt.Errorf("--clear takes no id")
				}
				app.Session.Cancel(ctx)
			case len(args) == 1:
				n, err := app.Session.Get(args[0])
				if err != nil {
					return err
				}
				if _, err := app.Session.Select(ctx, n.ID, toggle); err != nil {
					return err
				}
			case !show:
				return fmt.Errorf("pass an id, --clear or --show")
			}
			if asJSON {
				return format.WriteJSON(cmd.OutOrStdout(), app.Session.Selection(), false)
			}
			return writeSelection(cmd.OutOrStdout(), app.Session)
		},
	}
	cmd.Flags().BoolVarP(&toggle, "toggle", "t", false, "toggle the note in a multi-selection")
	cmd.Flags().BoolVar(&clear, "clear", false, "clear the selection")
	cmd.Flags().BoolVar(&show, "show", false, "print the current selection")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the selection as JSON")
	return cmd
}

func writeSelection(w io.Writer, sess *session.Session) error {
	sel := sess.Selection()
	if sel.Mode() == selection.Empty {
		_, err := fmt.Fprintln(w, "Nothing selected.")
		return err
	}
	var picked []models.Note
	for _, n := range sess.Notes() {
		if sel.Contains(n.ID) {
			picked = append(picked, n)
		}
	}
	if _, err := fmt.Fprintf(w, "%s selection (%d):\n", sel.Mode(), sel.Len()); err != nil {
		return err
	}
	return format.WritePlainNotes(w, picked, sel, false)
}
