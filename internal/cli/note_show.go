package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/mithrel/inkleaf/internal/present"
	"github.com/mithrel/inkleaf/internal/present/format"
)

func newNoteShowCmd() *cobra.Command {
	var outputMode string
	var copyHTML bool
	cmd := &cobra.Command{
		Use:               "show [id]",
		Short:             "Display a note (default: the active one)",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeNoteIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok || mode == present.ModeTUI {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}

			var id string
			if len(args) > 0 {
				id = args[0]
			} else if active, ok := app.Session.Active(); ok {
				id = active.ID
			} else {
				return fmt.Errorf("no active note; pass an id or run \"inkleaf select <id>\"")
			}
			n, err := app.Session.Get(id)
			if err != nil {
				return err
			}

			if copyHTML {
				if err := clipboard.WriteAll(format.NoteHTML(app.Renderer, n)); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Copied HTML to clipboard.")
			}

			opts := present.Options{
				Mode:       mode,
				JSONIndent: true,
				Style:      app.Cfg.TUI.Style,
				WordWrap:   app.Cfg.TUI.WordWrap,
			}
			return renderNote(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), n, app.Renderer, opts)
		},
	}
	cmd.Flags().StringVarP(&outputMode, "output", "o", "pretty", "output mode: pretty|plain|html|json|yaml")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"pretty", "plain", "html", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.Flags().BoolVar(&copyHTML, "copy", false, "copy the rendered HTML to the clipboard")
	return cmd
}
