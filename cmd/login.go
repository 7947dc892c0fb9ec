// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	stderrors "errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"synbalance/cli/internal/session"
)

var (
	loginUser         string
	loginShowPassword bool
)

// loginCmd signs in with login and password.
// An existing valid session is reused instead of prompting again.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to SynBalance",
	Long: `The login command checks whether the stored session is still valid and, if not,
prompts for login and password and submits them to the SynBalance proxy.

The session cookie issued by the server is kept in the OS keychain, so later
commands reuse it on whichever backend instance the proxy picks.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		ctx := cmd.Context()

		_ = a.ctrl.Initialize(ctx)
		if s := a.ctrl.Current(); s.LoggedIn() {
			fmt.Fprintf(a.out, "Já autenticado como %s\n", s.Profile.Login)
			return renderProfile(a.out, s.Profile, a.loc)
		}

		identifier := loginUser
		if identifier == "" {
			if identifier, err = promptIdentifier(); err != nil {
				return err
			}
		}
		secret, err := promptSecret(loginShowPassword)
		if err != nil {
			return err
		}

		if err := a.ctrl.SubmitLogin(ctx, identifier, secret); err != nil {
			if stderrors.Is(err, session.ErrIgnored) {
				return err
			}
			return errReported
		}
		s := a.ctrl.Current()
		pterm.Success.Printfln("Bem-vindo, %s!", s.Profile.Name)
		return renderProfile(a.out, s.Profile, a.loc)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "Login identifier (prompted when empty)")
	loginCmd.Flags().BoolVar(&loginShowPassword, "show-password", false, "Echo the password while typing")
}
