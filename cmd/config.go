// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"synbalance/cli/internal/config"
	"synbalance/cli/internal/manifest"
)

// configCmd shows the effective configuration after the file and environment layers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		p, err := config.Path()
		if err != nil {
			return err
		}
		return renderConfig(cmd.OutOrStdout(), cfg, p)
	},
}

// configSetURLCmd stores the proxy origin in config.json.
var configSetURLCmd = &cobra.Command{
	Use:   "set-url <url>",
	Short: "Store the proxy base URL in the config file",
	Long: `The set-url command validates the URL and writes it to config.json. The
SYNBALANCE_URL variable and the --url flag still take precedence over it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setBaseURL(args[0])
		if err != nil {
			return err
		}
		pterm.Success.Printf("URL salva: %s\n", cfg.BaseURL)
		return nil
	},
}

// setBaseURL rewrites base_url in the config file. Environment overrides are
// not persisted; an invalid URL leaves the file untouched.
func setBaseURL(raw string) (config.Config, error) {
	cfg, err := config.LoadFile()
	if err != nil {
		return cfg, err
	}
	cfg.BaseURL = raw
	if _, err := manifest.FromConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, config.Save(cfg)
}

func renderConfig(w io.Writer, cfg config.Config, path string) error {
	table, err := pterm.DefaultTable.WithData(pterm.TableData{
		{"Arquivo", path},
		{"URL", cfg.BaseURL},
		{"Cookie", cfg.Cookie.Name + " @ " + cfg.Cookie.Domain},
		{"Timeout", cfg.HTTPTimeout.String()},
		{"Fuso", cfg.Timezone},
		{"Log", cfg.LogLevel},
		{"Persistir sessão", strconv.FormatBool(cfg.PersistSession)},
	}).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

func init() {
	configCmd.AddCommand(configSetURLCmd)
	rootCmd.AddCommand(configCmd)
}
