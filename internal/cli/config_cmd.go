package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/inkleaf/internal/config"
	"github.com/mithrel/inkleaf/internal/storage"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage configuration",
		Annotations: map[string]string{"noapp": "true"},
	}
	cmd.AddCommand(newConfigGenerateCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigCheckCmd())
	return cmd
}

type generateMode int

const (
	generateNew generateMode = iota
	generateOverwrite
	generateUpdate
)

func newConfigGenerateCmd() *cobra.Command {
	var out string
	var overwrite, update bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a default config.toml",
		Long: heredoc.Doc(`
			Write a commented config.toml with every option at its default.

			--update keeps your values, comments out options that no longer
			exist and adds new ones. --overwrite replaces the file. Both keep a
			backup of the previous file.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if overwrite && update {
				return errors.New("choose either --overwrite or --update")
			}
			if out == "" {
				out = config.DefaultConfigPath()
			}
			mode := generateNew
			switch {
			case overwrite:
				mode = generateOverwrite
			case update:
				mode = generateUpdate
			}
			return generateConfig(cmd.OutOrStdout(), out, mode)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path for config.toml")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite existing config (creates a backup)")
	cmd.Flags().BoolVar(&update, "update", false, "merge defaults into existing config (creates a backup)")
	return cmd
}

func generateConfig(w io.Writer, path string, mode generateMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	existing, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if exists && mode == generateNew {
		return fmt.Errorf("config already exists at %s; use --update to merge defaults or --overwrite to replace it", path)
	}

	content := config.RenderDefaultTOML()
	if exists && mode == generateUpdate {
		updated, changed := config.UpdateTOML(string(existing))
		if !changed {
			_, _ = fmt.Fprintf(w, "Config already up to date: %s\n", path)
			return nil
		}
		content = updated
	}

	if exists {
		backup, err := backupConfig(path, existing)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Backup: %s\n", backup)
	}
	if err := storage.WriteFileAtomic(path, []byte(content), 0o600); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

// backupConfig saves data next to path as .bak, or a timestamped .bak when
// that name is taken.
func backupConfig(path string, data []byte) (string, error) {
	backup := path + ".bak"
	if _, err := os.Stat(backup); err == nil {
		backup = fmt.Sprintf("%s.bak-%s", path, time.Now().Format("20060102-150405"))
	}
	if err := os.WriteFile(backup, data, 0o600); err != nil {
		return "", err
	}
	return backup, nil
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()
			if f := cmd.Flag("config"); f != nil && f.Value.String() != "" {
				path = f.Value.String()
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func newConfigCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the merged configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if f := cmd.Flag("config"); f != nil && f.Value.String() != "" {
				v.SetConfigFile(f.Value.String())
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			if err := config.CheckConfigValidity(v); err != nil {
				return err
			}
			if used := v.ConfigFileUsed(); used != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", used)
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "defaults: ok")
			return nil
		},
	}
}
