// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	stderrors "errors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"synbalance/cli/internal/session"
)

// logoutCmd ends the current session on the server and clears the cookie locally.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Long: `The logout command asks the server to end the session and then removes the
session cookie locally, both for the shared domain and for the current host.

The local cookie is removed even when the server cannot be reached.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		confirmed, err := runLogout(cmd.Context(), a)
		if err != nil {
			return err
		}
		if confirmed {
			pterm.Success.Println("Sessão encerrada.")
			return nil
		}
		pterm.Info.Println("Nenhuma sessão confirmada. Cookie local removido.")
		return nil
	},
}

// runLogout ends the session and reports whether the startup check had
// confirmed it. An unconfirmed cookie may still be live on the server (the
// check can fail on one flaky instance), so it is sent to logout before being
// dropped.
func runLogout(ctx context.Context, a *app) (bool, error) {
	_ = a.ctrl.Initialize(ctx)
	err := a.ctrl.SubmitLogout(ctx)
	if !stderrors.Is(err, session.ErrIgnored) {
		return true, err
	}
	if _, ok := a.jar.SessionID(); ok {
		a.api.EndSession(ctx)
	}
	return false, a.ctrl.Reset(ctx)
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
