package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mithrel/inkleaf/internal/confirm"
	"github.com/mithrel/inkleaf/internal/present/tui"
)

func newBrowseCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse, edit and delete notes interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, filter)
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "initial fuzzy filter on titles")
	return cmd
}

func runBrowse(cmd *cobra.Command, filter string) error {
	if !isTerminal(cmd.OutOrStdout()) {
		return errors.New("browse needs a terminal; use \"note list --output plain\" instead")
	}
	app := getApp(cmd)
	ch := confirm.NewChannel()
	app.Session.SetConfirmer(ch)
	return tui.Browse(cmd.Context(), app.Session, ch, tui.Options{
		Style:    app.Cfg.TUI.Style,
		WordWrap: app.Cfg.TUI.WordWrap,
		Debounce: app.Cfg.Preview.Debounce,
		Headers:  true,
		Filter:   filter,
		Log:      app.Log,
	})
}
