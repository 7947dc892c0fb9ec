// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the SynBalance CLI.
// It implements the session commands (login, logout, me, server, shell) using
// the Cobra CLI framework. Every command drives one session controller and
// renders its transitions with spinners and pterm output.
package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
	flagURL     string
	flagVerbose bool
)

// errReported marks a failure that was already shown to the user through the
// session notifier. Execute only sets the exit code for it.
var errReported = stderrors.New("reported")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "synbalance",
	Short: "SynBalance CLI for signing in to the load-balanced login cluster",
	Long: `SynBalance is a command-line client for the SynBalance login service. It signs in
against the reverse proxy, keeps the shared session cookie in the OS keychain and
shows which backend instance answered each request.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion(cmd)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// Interrupts cancel the command context so in-flight requests unwind cleanly.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !stderrors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "Base URL of the SynBalance proxy (overrides config and SYNBALANCE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose debug output")
}
