// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"

	"synbalance/cli/internal/auth"
	"synbalance/cli/internal/backend"
	"synbalance/cli/internal/config"
	"synbalance/cli/internal/keychain"
	"synbalance/cli/internal/logging"
	"synbalance/cli/internal/manifest"
	"synbalance/cli/internal/session"
)

// app bundles what a command needs to drive one session.
type app struct {
	cfg  config.Config
	m    *manifest.Manifest
	log  *pterm.Logger
	api  *backend.HTTP
	jar  *auth.Jar
	ctrl *session.Controller
	view *stateView
	loc  *time.Location
	out  io.Writer
}

// newApp resolves configuration and wires config, keychain, cookie jar,
// backend client and session controller together.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagURL != "" {
		cfg.BaseURL = flagURL
	}
	return buildApp(cfg, openStore(cfg), os.Stdout)
}

func buildApp(cfg config.Config, store auth.Store, out io.Writer) (*app, error) {
	level := logging.ParseLevel(cfg.LogLevel)
	if flagVerbose {
		level = pterm.LogLevelTrace
	}
	log := logging.New(level, os.Stderr)

	m, err := manifest.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	jar, err := auth.NewJar(m.HTTPBaseURL(), auth.JarOptions{
		CookieName:   cfg.Cookie.Name,
		CookieDomain: cfg.Cookie.Domain,
		Store:        store,
		Logger:       log,
	})
	if err != nil {
		return nil, err
	}
	api := backend.New(m, backend.Options{
		Jar:       jar,
		Timeout:   cfg.HTTPTimeout,
		UserAgent: userAgent(),
		Logger:    log,
	})

	a := &app{
		cfg:  cfg,
		m:    m,
		log:  log,
		api:  api,
		jar:  jar,
		view: newStateView(out),
		loc:  cfg.Location(),
		out:  out,
	}
	a.ctrl = session.New(api, jar,
		session.WithLabeler(api),
		session.WithNotifier(a.notifier()),
		session.WithObserver(a.view.observe),
		session.WithLogger(log),
	)
	return a, nil
}

// openStore picks the OS keychain, or an in-memory store when persistence is
// off or no keychain backend is available.
func openStore(cfg config.Config) auth.Store {
	if !cfg.PersistSession {
		return keychain.NewMemoryManager()
	}
	km, err := keychain.NewManager()
	if err != nil {
		pterm.Warning.Println("OS keychain unavailable; the session will not survive this command.")
		return keychain.NewMemoryManager()
	}
	return km
}

// close stops any spinner still running.
func (a *app) close() {
	a.view.stop()
}
