package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/fs-cli/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the fs-cli config file",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd(app))
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Long: `Write a commented default config file.

By default the file is created in the user config directory
(e.g. ~/.config/fs-cli/config.yaml). An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfigFile(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write config.yaml into")
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg
			effective := config.FileConfig{
				LogLevel:  strings.ToLower(cfg.Level.String()),
				LogFormat: cfg.Format.String(),
				Color:     cfg.Color,
				Strict:    cfg.Strict,
				Find:      &config.FindConfig{SkipUnreadable: cfg.SkipUnreadable},
				Cat:       &config.CatConfig{Render: cfg.Render, WordWrap: cfg.WordWrap},
			}

			data, err := yaml.Marshal(&effective)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			out := cmd.OutOrStdout()
			if cfg.LoadedFrom != "" {
				fmt.Fprintf(out, "# loaded from %s\n", cfg.LoadedFrom)
			}
			_, err = out.Write(data)
			return err
		},
	}
}
