// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"synbalance/cli/internal/logging"
	"synbalance/cli/internal/session"
)

// serverCmd prints the label of the backend instance the proxy routed to.
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Show which backend instance answers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		label, err := a.api.ServerLabel(cmd.Context())
		if err != nil {
			pterm.Warning.Println(session.LabelReadFailed)
			a.log.Debug(logging.PresentError("server label", err))
			return errReported
		}
		fmt.Fprintf(a.out, "🖥️  Servidor: %s\n", label)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
