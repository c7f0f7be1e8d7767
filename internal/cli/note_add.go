package cli

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mithrel/inkleaf/pkg/models"
)

func newNoteAddCmd() *cobra.Command {
	var content string
	var edit bool
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a note",
		Long: heredoc.Doc(`
			Add a note at the top of the list and select it. Without a title or
			--content the note starts untitled and empty.
		`),
		Example: heredoc.Doc(`
			inkleaf note add "Groceries" --content "- milk"
			inkleaf note add --edit
		`),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			return addNote(cmd, title, content, edit)
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "initial Markdown content")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "open $EDITOR on the new note")
	return cmd
}

func addNote(cmd *cobra.Command, title, content string, edit bool) error {
	app := getApp(cmd)
	ctx := cmd.Context()
	n := app.Session.Add(ctx)

	var in models.UpdateInput
	if title != "" {
		in.Title = &title
	}
	if content != "" {
		in.Content = &content
	}
	if in.Title != nil || in.Content != nil {
		updated, err := app.Session.Update(ctx, n.ID, in)
		if err != nil {
			app.Session.Discard(ctx, n.ID)
			return err
		}
		n = updated
	}
	if edit {
		return editInEditor(cmd, n, false)
	}
	printNoteLine(cmd, n)
	return nil
}
