// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"synbalance/cli/internal/errors"
	"synbalance/cli/internal/logging"
)

// CheckSession calls GET /api/perfil with the session cookie.
// Any 2xx with a decodable profile confirms the session; any other status means
// the session is absent or invalid.
func (h *HTTP) CheckSession(ctx context.Context) (Profile, error) {
	var p Profile
	req, err := h.newRequest(ctx, http.MethodGet, h.endpoints.Profile, nil)
	if err != nil {
		return p, errors.Wrap(errors.TransportFailure, "build profile request", err)
	}
	resp, err := h.do(req)
	if err != nil {
		return p, errors.Wrap(errors.TransportFailure, "fetch profile", err)
	}
	defer drain(resp)

	if !isSuccess(resp.StatusCode) {
		return p, errors.Wrap(errors.NotAuthenticated, "no valid session", fmt.Errorf("profile: status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&p); err != nil {
		return p, errors.Wrap(errors.TransportFailure, "decode profile", err)
	}
	return p, nil
}

// loginRequest is the wire body of POST /api/login.
type loginRequest struct {
	Login string `json:"login"`
	Senha string `json:"senha"`
}

// loginResponse carries the outcome flag, the optional error text and, on
// success, the same profile fields as GET /api/perfil.
type loginResponse struct {
	Success bool   `json:"success"`
	Erro    string `json:"erro"`
	Profile
}

// Login posts { login, senha } to /api/login.
// The body is decoded before the status is looked at: a response that is not
// JSON is a transport failure regardless of its status.
func (h *HTTP) Login(ctx context.Context, identifier, secret string) (Profile, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || secret == "" {
		return Profile{}, errors.New(errors.Validation, MsgMissingFields)
	}

	b, err := json.Marshal(loginRequest{Login: identifier, Senha: secret})
	if err != nil {
		return Profile{}, errors.Wrap(errors.TransportFailure, "encode credentials", err)
	}
	req, err := h.newRequest(ctx, http.MethodPost, h.endpoints.Login, bytes.NewReader(b))
	if err != nil {
		return Profile{}, errors.Wrap(errors.TransportFailure, "build login request", err)
	}
	resp, err := h.do(req)
	if err != nil {
		return Profile{}, errors.Wrap(errors.TransportFailure, "submit credentials", err)
	}
	defer drain(resp)

	var out loginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		return Profile{}, errors.Wrap(errors.TransportFailure, "decode login response",
			fmt.Errorf("status %d: %w", resp.StatusCode, err))
	}
	if !isSuccess(resp.StatusCode) || !out.Success {
		reason := strings.TrimSpace(out.Erro)
		if reason == "" {
			reason = MsgInvalidCredentials
		}
		return Profile{}, errors.New(errors.RejectedCredentials, reason)
	}
	return out.Profile, nil
}

// EndSession calls POST /api/logout. Failures are logged and swallowed: the
// user's intent to log out is never blocked by the network.
func (h *HTTP) EndSession(ctx context.Context) {
	req, err := h.newRequest(ctx, http.MethodPost, h.endpoints.Logout, nil)
	if err != nil {
		h.log.Debug("logout request not built", h.log.Args("error", err.Error()))
		return
	}
	resp, err := h.do(req)
	if err != nil {
		h.log.Debug("logout request failed", h.log.Args("error", logging.Mask(err.Error())))
		return
	}
	defer drain(resp)
	if !isSuccess(resp.StatusCode) {
		h.log.Debug("logout rejected by server", h.log.Args("status", resp.StatusCode))
	}
}
