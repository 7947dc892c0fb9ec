// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/term"

	"synbalance/cli/internal/terminal"
)

// stdinReader is shared so consecutive prompts never lose buffered input.
var stdinReader = bufio.NewReader(os.Stdin)

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// readLine reads one line and strips only the line terminator.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptIdentifier asks for the login identifier.
func promptIdentifier() (string, error) {
	if !stdinIsTerminal() {
		return readLine(stdinReader)
	}
	return pterm.DefaultInteractiveTextInput.Show("Login")
}

// promptSecret asks for the password. It is read without echo unless visible
// is set; a visible entry is cleared from the screen once submitted.
func promptSecret(visible bool) (string, error) {
	if !stdinIsTerminal() {
		return readLine(stdinReader)
	}
	if visible {
		const label = "Senha: "
		fmt.Print(label)
		secret, err := readLine(stdinReader)
		if err != nil {
			return "", err
		}
		terminal.ClearPreviousLines(len(label) + len(secret))
		return secret, nil
	}

	fmt.Print("Senha: ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	secret := string(b)
	clear(b)
	return secret, nil
}
