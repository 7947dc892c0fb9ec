// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"
)

// meCmd displays the profile bound to the current session.
var meCmd = &cobra.Command{
	Use:     "me",
	Aliases: []string{"whoami", "perfil"},
	Short:   "Show the current authenticated account",
	Long: `The me command validates the stored session with the server and shows the
profile it is bound to: name, login, login time, session id and the backend
instance that answered.

If no valid session exists, it will indicate that the user is not logged in.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		_ = a.ctrl.Initialize(cmd.Context())
		s := a.ctrl.Current()
		if !s.LoggedIn() {
			printNotLoggedIn(a.out)
			return nil
		}
		return renderProfile(a.out, s.Profile, a.loc)
	},
}

func init() {
	rootCmd.AddCommand(meCmd)
}
