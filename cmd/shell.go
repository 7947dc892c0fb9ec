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

// Shell menu entries.
const (
	optLogin   = "Entrar"
	optForgot  = "Esqueci minha senha"
	optProfile = "Ver perfil"
	optLogout  = "Sair da conta"
	optServer  = "Servidor atual"
	optQuit    = "Fechar"
)

var shellShowPassword bool

// shellCmd keeps one session controller alive across many actions, so the
// startup check runs once and later triggers see the live state.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive session menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !stdinIsTerminal() {
			return fmt.Errorf("shell requires an interactive terminal")
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		ctx := cmd.Context()

		_ = a.ctrl.Initialize(ctx)
		for {
			if ctx.Err() != nil {
				return nil
			}
			s := a.ctrl.Current()
			choice, err := pterm.DefaultInteractiveSelect.
				WithOptions(menuOptions(s)).
				Show(menuTitle(s, a.ctrl.Label()))
			if err != nil {
				return err
			}
			// the error overlay lasts until the next action
			a.ctrl.DismissError()

			switch choice {
			case optLogin:
				identifier, err := promptIdentifier()
				if err != nil {
					return err
				}
				secret, err := promptSecret(shellShowPassword)
				if err != nil {
					return err
				}
				if err := a.ctrl.SubmitLogin(ctx, identifier, secret); err == nil {
					pterm.Success.Printfln("Bem-vindo, %s!", a.ctrl.Current().Profile.Name)
				} else if stderrors.Is(err, session.ErrIgnored) {
					pterm.Warning.Println("Aguarde a operação em andamento.")
				}
			case optForgot:
				pterm.Info.Println(msgForgotPassword)
			case optProfile:
				if cur := a.ctrl.Current(); cur.LoggedIn() {
					if err := renderProfile(a.out, cur.Profile, a.loc); err != nil {
						return err
					}
				}
			case optLogout:
				if err := a.ctrl.SubmitLogout(ctx); err == nil {
					pterm.Success.Println("Sessão encerrada.")
				}
			case optServer:
				label, err := a.api.ServerLabel(ctx)
				if err != nil {
					label = session.LabelReadFailed
				}
				fmt.Fprintf(a.out, "🖥️  Servidor: %s\n", label)
			case optQuit:
				return nil
			}
		}
	},
}

// menuOptions lists the actions the current phase allows.
func menuOptions(s session.State) []string {
	if s.LoggedIn() {
		return []string{optProfile, optServer, optLogout, optQuit}
	}
	return []string{optLogin, optForgot, optServer, optQuit}
}

func menuTitle(s session.State, label string) string {
	if label == "" {
		label = "-"
	}
	switch {
	case s.LoggedIn():
		return fmt.Sprintf("%s (%s) @ %s", s.Profile.Name, s.Profile.Login, label)
	case s.Failed():
		return fmt.Sprintf("Não autenticado @ %s [%s]", label, s.Error)
	default:
		return fmt.Sprintf("Não autenticado @ %s", label)
	}
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().BoolVar(&shellShowPassword, "show-password", false, "Echo the password while typing")
}
