// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"golang.org/x/term"

	"synbalance/cli/internal/backend"
	"synbalance/cli/internal/errors"
	"synbalance/cli/internal/httperrors"
	"synbalance/cli/internal/logging"
	"synbalance/cli/internal/session"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// startInlineSpinner starts a simple inline spinner animation on a single line.
// It displays rotating animation frames followed by the provided text, updating
// the same line in the terminal. The returned function stops the spinner and
// clears the line.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
			select {
			case <-stop:
				// Clear the spinner line completely, then return
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s", line)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
	}
}

// stateView renders in-flight phases as a spinner with the cursor hidden.
// Nothing is drawn when the output is not a terminal.
type stateView struct {
	w   io.Writer
	tty bool

	mu   sync.Mutex
	halt func()
}

func newStateView(w io.Writer) *stateView {
	v := &stateView{w: w}
	if f, ok := w.(*os.File); ok {
		v.tty = term.IsTerminal(int(f.Fd()))
	}
	return v
}

// observe is registered as the session observer.
func (v *stateView) observe(s session.State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopLocked()
	if !v.tty || !s.InFlight() {
		return
	}
	cursor.Hide()
	v.halt = startInlineSpinner(v.w, phaseText(s.Phase), spinnerFrames, 120*time.Millisecond)
}

func (v *stateView) stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopLocked()
}

func (v *stateView) stopLocked() {
	if v.halt == nil {
		return
	}
	v.halt()
	v.halt = nil
	cursor.Show()
}

func phaseText(p session.Phase) string {
	switch p {
	case session.Checking:
		return "Verificando sessão"
	case session.Authenticating:
		return "Autenticando"
	case session.LoggingOut:
		return "Encerrando sessão"
	default:
		return ""
	}
}

// notifier prints controller errors. With --verbose, transport failures also
// get a diagnosis of what went wrong on the network.
func (a *app) notifier() session.Notifier {
	return session.NotifierFunc(func(err error) {
		pterm.Error.Println(errors.MessageOf(err))
		if !flagVerbose {
			return
		}
		if errors.KindOf(err) == errors.TransportFailure {
			_ = httperrors.FormatNetworkError(err, "contacting "+a.m.Host())
			return
		}
		a.log.Debug(logging.PresentError("login", err))
	})
}

// renderProfile prints the authenticated profile as a two-column table.
func renderProfile(w io.Writer, p backend.Profile, loc *time.Location) error {
	server := p.Server
	if server == "" {
		server = "-"
	}
	table, err := pterm.DefaultTable.WithData(pterm.TableData{
		{"Nome", p.Name},
		{"Login", p.Login},
		{"Login em", p.LoginAt.Display(loc)},
		{"Sessão", p.SessionID},
		{"Servidor", server},
	}).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

// printNotLoggedIn tells the user how to start a session.
func printNotLoggedIn(w io.Writer) {
	fmt.Fprintln(w, "🔒 Você ainda não está autenticado!")
	fmt.Fprintln(w, "   Execute 'synbalance login' para começar.")
}
