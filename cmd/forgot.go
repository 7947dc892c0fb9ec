// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// msgForgotPassword is shown until password recovery exists on the server.
const msgForgotPassword = "Funcionalidade de recuperação de senha em desenvolvimento."

var forgotCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Recover a forgotten password",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		pterm.Info.Println(msgForgotPassword)
	},
}

func init() {
	rootCmd.AddCommand(forgotCmd)
}
