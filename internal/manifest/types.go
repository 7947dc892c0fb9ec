// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package manifest describes the backend endpoints the CLI talks to.
// All paths are origin-relative so that the reverse proxy, not the client,
// decides which backend instance answers each request.
package manifest

import (
	"net/url"
	"strings"
)

// Manifest binds the proxy origin to the endpoint paths.
type Manifest struct {
	Origin string
	HTTP   HTTPEndpoints
}

// HTTPEndpoints contains REST API endpoint paths.
type HTTPEndpoints struct {
	Profile    string `json:"profile"`     // e.g., "/api/perfil"
	Login      string `json:"login"`       // e.g., "/api/login"
	Logout     string `json:"logout"`      // e.g., "/api/logout"
	ServerName string `json:"server_name"` // e.g., "/nome_servidor.txt"
}

// DefaultEndpoints returns the paths served by the SynBalance cluster.
func DefaultEndpoints() HTTPEndpoints {
	return HTTPEndpoints{
		Profile:    "/api/perfil",
		Login:      "/api/login",
		Logout:     "/api/logout",
		ServerName: "/nome_servidor.txt",
	}
}

// Merge returns e with every empty path replaced by the one in fallback.
func (e HTTPEndpoints) Merge(fallback HTTPEndpoints) HTTPEndpoints {
	pick := func(v, d string) string {
		if strings.TrimSpace(v) == "" {
			return d
		}
		return normalizePath(v)
	}
	return HTTPEndpoints{
		Profile:    pick(e.Profile, fallback.Profile),
		Login:      pick(e.Login, fallback.Login),
		Logout:     pick(e.Logout, fallback.Logout),
		ServerName: pick(e.ServerName, fallback.ServerName),
	}
}

func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// HTTPBaseURL reduces the origin to scheme://host, dropping any path, query or
// trailing slash, so endpoint paths can be appended verbatim.
func (m *Manifest) HTTPBaseURL() string {
	u, err := url.Parse(strings.TrimSpace(m.Origin))
	if err != nil || u.Host == "" {
		return strings.TrimRight(m.Origin, "/")
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + u.Host
}

// Host returns the host (without port) of the origin; the cookie jar uses it
// for the host-only clear.
func (m *Manifest) Host() string {
	u, err := url.Parse(m.HTTPBaseURL())
	if err != nil {
		return ""
	}
	return u.Hostname()
}
