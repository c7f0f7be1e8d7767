package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/inkleaf/internal/notes"
	"github.com/mithrel/inkleaf/internal/present"
)

func newNoteListCmd() *cobra.Command {
	var outputMode string
	var filter string
	var since, until string
	var noHeaders bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok || mode == present.ModeHTML {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
			if mode == present.ModeTUI {
				if since != "" || until != "" {
					return fmt.Errorf("--since/--until are not supported with --output tui")
				}
				return runBrowse(cmd, filter)
			}
			r, err := notes.ParseRange(since, until, time.Now())
			if err != nil {
				return err
			}
			list := notes.Between(notes.Filter(app.Session.Notes(), filter), r)
			opts := present.Options{
				Mode:    mode,
				Headers: !noHeaders,
			}
			return renderNotes(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), list, app.Session.Selection(), opts)
		},
	}
	cmd.Flags().StringVarP(&outputMode, "output", "o", "plain", "output mode: plain|json|ndjson|yaml|tui")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"plain", "json", "ndjson", "yaml", "tui"}, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "fuzzy filter on titles")
	cmd.Flags().StringVar(&since, "since", "", "only notes created after this (2h, 3d, 2w, 1mo or a date)")
	cmd.Flags().StringVar(&until, "until", "", "only notes created before this")
	cmd.Flags().BoolVar(&noHeaders, "noheaders", false, "hide column headers (plain)")
	return cmd
}
