package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/inkleaf/internal/wire"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "completion",
		Short:       "Generate shell completion scripts",
		Annotations: map[string]string{"noapp": "true"},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "bash",
		Short: "Generate Bash completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "zsh",
		Short: "Generate Zsh completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "fish",
		Short: "Generate Fish completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	})

	return cmd
}

// completeNoteIDs offers stored note ids starting with toComplete, with the
// title as description.
func completeNoteIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if cmd.Context() == nil {
		cmd.SetContext(context.Background())
	}
	root := cmd.Root()
	if root.PersistentPreRunE != nil {
		if err := root.PersistentPreRunE(cmd, args); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
	}
	app, ok := cmd.Context().Value(appKey).(*wire.App)
	if !ok {
		return nil, cobra.ShellCompDirectiveError
	}
	defer app.Close()
	var out []string
	for _, n := range app.Session.Notes() {
		if strings.HasPrefix(n.ID, toComplete) {
			out = append(out, n.ID+"\t"+n.DisplayTitle())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
