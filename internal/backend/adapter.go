// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the typed client for the SynBalance login cluster.
// It defines the API contract for session validation, authentication and logout,
// and an HTTP implementation that issues every request with the shared session
// cookie so that any backend instance behind the proxy can serve it.
//
// Outcomes are normalized into internal/errors kinds: not_authenticated,
// rejected_credentials, validation and transport_failure.
package backend

import (
	"context"

	"synbalance/cli/internal/errors"
)

// API defines backend operations the session controller depends on.
// Implementations may call real HTTP endpoints or provide mocks for tests.
type API interface {
	// CheckSession returns the profile bound to the current session cookie.
	// It fails with ErrNotAuthenticated when the server reports no valid
	// session, or with a transport_failure error.
	CheckSession(ctx context.Context) (Profile, error)
	// Login submits credentials. The identifier is trimmed; the secret is sent
	// verbatim. It fails with rejected_credentials, validation or
	// transport_failure errors.
	Login(ctx context.Context, identifier, secret string) (Profile, error)
	// EndSession asks the server to terminate the session. It never fails from
	// the caller's point of view.
	EndSession(ctx context.Context)
}

// Labeler supplies the human-readable label of the serving backend instance.
type Labeler interface {
	ServerLabel(ctx context.Context) (string, error)
}

// Messages returned to the user verbatim.
const (
	MsgInvalidCredentials = "Usuário ou senha inválidos"
	MsgMissingFields      = "Por favor, preencha todos os campos"
	LabelUnknownServer    = "Servidor Desconhecido"
)

// ErrNotAuthenticated is returned by CheckSession when the server confirms
// there is no valid session. Match it with errors.Is.
var ErrNotAuthenticated = errors.New(errors.NotAuthenticated, "")
