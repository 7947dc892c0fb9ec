// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import "synbalance/cli/internal/backend"

// Phase is the lifecycle step the controller is in.
type Phase int

const (
	// Anonymous means no valid session is known.
	Anonymous Phase = iota
	// Checking means the startup session validation is in flight.
	Checking
	// Authenticating means a login request is in flight.
	Authenticating
	// Authenticated means the server confirmed the session.
	Authenticated
	// LoggingOut means a logout request is in flight.
	LoggingOut
)

func (p Phase) String() string {
	switch p {
	case Anonymous:
		return "anonymous"
	case Checking:
		return "checking"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case LoggingOut:
		return "logging_out"
	default:
		return "unknown"
	}
}

// State is a snapshot of the controller. Profile is only meaningful when
// Phase is Authenticated. Error is a transient overlay that can only be set
// on Anonymous.
type State struct {
	Phase   Phase
	Profile backend.Profile
	Error   string
}

// InFlight reports whether a request is pending.
func (s State) InFlight() bool {
	return s.Phase == Checking || s.Phase == Authenticating || s.Phase == LoggingOut
}

// LoggedIn reports whether the state carries a confirmed profile.
func (s State) LoggedIn() bool { return s.Phase == Authenticated }

// Failed reports whether the error overlay is showing.
func (s State) Failed() bool { return s.Phase == Anonymous && s.Error != "" }
