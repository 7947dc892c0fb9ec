// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session owns the login state machine of the CLI.
//
// A Controller serializes the three triggers (startup check, login, logout)
// against the backend. At most one state-changing request is in flight at a
// time; triggers that arrive meanwhile are dropped with ErrIgnored rather than
// queued. The controller mutex is never held across a network call, so
// Current always answers.
package session

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"

	"synbalance/cli/internal/backend"
	"synbalance/cli/internal/errors"
	"synbalance/cli/internal/logging"
)

// Messages shown to the user verbatim.
const (
	MsgConnectivity = "Erro ao conectar com o servidor. Verifique se o backend está rodando."
	LabelReadFailed = "Erro ao ler servidor"
)

// ErrIgnored is returned when a trigger is not accepted in the current phase,
// typically because another request is still in flight.
var ErrIgnored = stderrors.New("session: trigger ignored in current state")

// CookieStore is the controller's view of the session cookie.
type CookieStore interface {
	// SessionID returns the current session cookie value, if any.
	SessionID() (string, bool)
	// ClearSession removes the session cookie in every scope it may live in.
	ClearSession()
}

// Notifier receives the errors that need the user's attention.
type Notifier interface {
	Notify(err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(err error)

// Notify calls f(err).
func (f NotifierFunc) Notify(err error) { f(err) }

// Observer receives every state the controller enters, in order.
// It must not call back into the controller's triggers.
type Observer func(State)

// Option configures a Controller.
type Option func(*Controller)

// WithLabeler sets the source of the serving instance label.
func WithLabeler(l backend.Labeler) Option {
	return func(c *Controller) { c.labeler = l }
}

// WithNotifier sets the error channel.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithObserver registers a transition observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// WithLogger sets the logger used for transition traces.
func WithLogger(l *pterm.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller is the single source of truth for the session state.
type Controller struct {
	api      backend.API
	cookies  CookieStore
	labeler  backend.Labeler
	notifier Notifier
	observer Observer
	log      *pterm.Logger

	mu          sync.Mutex
	state       State
	label       string
	initialized bool

	// emitMu keeps observer calls in transition order.
	emitMu sync.Mutex
}

// New returns a controller in the Anonymous phase.
func New(api backend.API, cookies CookieStore, opts ...Option) *Controller {
	c := &Controller{
		api:     api,
		cookies: cookies,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cookies == nil {
		c.cookies = noCookies{}
	}
	return c
}

// Current returns a snapshot of the state.
func (c *Controller) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Label returns the serving instance label learned during Initialize.
func (c *Controller) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

// Initialize validates any existing session and fetches the instance label
// concurrently. It runs once; later calls return ErrIgnored. Neither a missing
// session nor an unreachable backend is reported: both settle Anonymous.
func (c *Controller) Initialize(ctx context.Context) error {
	ok := c.update(func(s *State) bool {
		if c.initialized || s.Phase != Anonymous {
			return false
		}
		c.initialized = true
		*s = State{Phase: Checking}
		return true
	})
	if !ok {
		return ErrIgnored
	}

	var (
		g        errgroup.Group
		profile  backend.Profile
		checkErr error
		label    string
	)
	g.Go(func() error {
		profile, checkErr = c.api.CheckSession(ctx)
		return nil
	})
	if c.labeler != nil {
		g.Go(func() error {
			label = c.fetchLabel(ctx)
			return nil
		})
	}
	_ = g.Wait()

	c.mu.Lock()
	c.label = label
	c.mu.Unlock()

	if checkErr != nil {
		c.log.Debug("no session restored", c.log.Args("kind", string(errors.KindOf(checkErr)), "error", logging.Mask(checkErr.Error())))
		c.set(State{Phase: Anonymous})
		return nil
	}
	c.set(State{Phase: Authenticated, Profile: c.complete(profile)})
	return nil
}

// SubmitLogin authenticates with the given credentials. Empty fields are
// reported as a validation error without any request or state change. Any
// failure is notified and returned; the phase settles Anonymous with the error
// overlay set.
func (c *Controller) SubmitLogin(ctx context.Context, identifier, secret string) error {
	if strings.TrimSpace(identifier) == "" || secret == "" {
		err := errors.New(errors.Validation, backend.MsgMissingFields)
		c.notify(err)
		return err
	}

	ok := c.update(func(s *State) bool {
		if s.Phase != Anonymous {
			return false
		}
		*s = State{Phase: Authenticating}
		return true
	})
	if !ok {
		return ErrIgnored
	}

	profile, err := c.api.Login(ctx, identifier, secret)
	if err != nil {
		err = loginFailure(err)
		next := State{Phase: Anonymous}
		if errors.KindOf(err) != errors.Validation {
			next.Error = errors.MessageOf(err)
		}
		c.set(next)
		c.notify(err)
		return err
	}
	c.set(State{Phase: Authenticated, Profile: c.complete(profile)})
	return nil
}

// SubmitLogout ends the session. Whatever the server answers, the cookie is
// cleared locally and the phase settles Anonymous.
func (c *Controller) SubmitLogout(ctx context.Context) error {
	ok := c.update(func(s *State) bool {
		if s.Phase != Authenticated {
			return false
		}
		s.Phase = LoggingOut
		return true
	})
	if !ok {
		return ErrIgnored
	}

	c.api.EndSession(ctx)
	c.cookies.ClearSession()
	c.set(State{Phase: Anonymous})
	return nil
}

// Reset drops the local session cookie without contacting the server.
func (c *Controller) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ok := c.update(func(s *State) bool {
		if s.InFlight() {
			return false
		}
		c.cookies.ClearSession()
		*s = State{Phase: Anonymous}
		return true
	})
	if !ok {
		return ErrIgnored
	}
	return nil
}

// DismissError clears the error overlay, if any.
func (c *Controller) DismissError() {
	c.update(func(s *State) bool {
		if !s.Failed() {
			return false
		}
		s.Error = ""
		return true
	})
}

// update applies fn under the controller lock. When fn reports a change the
// new state is logged and handed to the observer.
func (c *Controller) update(fn func(s *State) bool) bool {
	c.mu.Lock()
	prev := c.state
	if !fn(&c.state) {
		c.mu.Unlock()
		return false
	}
	next := c.state
	c.emitMu.Lock()
	c.mu.Unlock()
	defer c.emitMu.Unlock()

	c.log.Debug("session transition", c.log.Args("from", prev.Phase.String(), "to", next.Phase.String()))
	if c.observer != nil {
		c.observer(next)
	}
	return true
}

func (c *Controller) set(next State) {
	c.update(func(s *State) bool {
		*s = next
		return true
	})
}

func (c *Controller) notify(err error) {
	if c.notifier != nil {
		c.notifier.Notify(err)
	}
}

// complete stamps the cookie value and the instance label onto a profile.
// The cookie value wins over whatever id the server echoed.
func (c *Controller) complete(p backend.Profile) backend.Profile {
	if id, ok := c.cookies.SessionID(); ok {
		p.SessionID = id
	}
	c.mu.Lock()
	p.Server = c.label
	c.mu.Unlock()
	return p
}

func (c *Controller) fetchLabel(ctx context.Context) string {
	label, err := c.labeler.ServerLabel(ctx)
	if err != nil {
		c.log.Debug("server label unavailable", c.log.Args("error", err.Error()))
		return LabelReadFailed
	}
	return label
}

// loginFailure maps a login error onto what the user sees.
func loginFailure(err error) error {
	switch errors.KindOf(err) {
	case errors.RejectedCredentials:
		var e *errors.E
		if stderrors.As(err, &e) && e.Message == "" {
			return errors.Wrap(errors.RejectedCredentials, backend.MsgInvalidCredentials, err)
		}
		return err
	case errors.Validation:
		return err
	default:
		return errors.Wrap(errors.TransportFailure, MsgConnectivity, err)
	}
}

type noCookies struct{}

func (noCookies) SessionID() (string, bool) { return "", false }
func (noCookies) ClearSession()             {}
