package cli

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mithrel/inkleaf/internal/confirm"
	"github.com/mithrel/inkleaf/internal/session"
)

func newNoteDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a note or the current selection",
		Long: heredoc.Doc(`
			Delete the note with the given id. Without an id the current
			selection is deleted: the active note, or every note in a
			multi-selection after a single confirmation.
		`),
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeNoteIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			ctx := cmd.Context()
			if yes {
				app.Session.SetConfirmer(confirm.Static(true))
			}

			if len(args) == 0 {
				n, err := app.Session.DeleteSelected(ctx)
				if errors.Is(err, session.ErrNothingSelected) {
					return fmt.Errorf("nothing selected; pass an id or run \"inkleaf select <id>\"")
				}
				if err != nil {
					return err
				}
				if n == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d %s.\n", n, plural(n, "note", "notes"))
				return nil
			}

			n, err := app.Session.Get(args[0])
			if err != nil {
				return err
			}
			ok, err := app.Session.Delete(ctx, n.ID)
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Note ID %s deleted successfully.\n", n.ID)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
