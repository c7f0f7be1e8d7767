package cli

import (
	"github.com/spf13/cobra"

	"github.com/mithrel/inkleaf/internal/buildinfo"
	"github.com/mithrel/inkleaf/internal/present/format"
)

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildinfo.Current(getApp(cmd).Cfg.BuildInfo.RepoURL)
			if asJSON {
				return format.WriteJSON(cmd.OutOrStdout(), info, true)
			}
			return info.WritePanel(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
