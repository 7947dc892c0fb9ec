// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth owns the client side of the shared session cookie.
//
// The server issues the cookie; this package only keeps it, replays it on every
// request through an http.CookieJar, and clears it on logout. The cookie value is
// opaque and never interpreted.
//
// This file persists the cookie in the OS keychain via internal/keychain so a
// session started by one CLI invocation is visible to the next, the way a
// browser keeps cookies between page loads.
package auth

import (
	"encoding/json"
	"net/http"
	"time"
)

// Store persists the serialized session cookie.
// *keychain.Manager implements it.
type Store interface {
	SaveSessionCookie(data []byte) error
	LoadSessionCookie() ([]byte, error)
	ClearSession() error
}

// record is the persisted form of the session cookie.
type record struct {
	Name     string     `json:"name"`
	Value    string     `json:"value"`
	Domain   string     `json:"domain,omitempty"` // empty for host-only cookies
	Path     string     `json:"path,omitempty"`
	Expires  *time.Time `json:"expires,omitempty"`
	Secure   bool       `json:"secure,omitempty"`
	HttpOnly bool       `json:"http_only,omitempty"`
}

// recordFrom captures a Set-Cookie directive. ok is false when the directive
// deletes the cookie rather than setting it.
func recordFrom(c *http.Cookie, now time.Time) (record, bool) {
	if c.Value == "" || c.MaxAge < 0 {
		return record{}, false
	}
	r := record{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}
	switch {
	case c.MaxAge > 0:
		exp := now.Add(time.Duration(c.MaxAge) * time.Second).UTC()
		r.Expires = &exp
	case !c.Expires.IsZero():
		if !c.Expires.After(now) {
			return record{}, false
		}
		exp := c.Expires.UTC()
		r.Expires = &exp
	}
	return r, true
}

func (r record) expired(now time.Time) bool {
	return r.Expires != nil && !r.Expires.After(now)
}

// cookie rebuilds the directive that recreates the stored cookie in a jar.
func (r record) cookie() *http.Cookie {
	c := &http.Cookie{
		Name:     r.Name,
		Value:    r.Value,
		Domain:   r.Domain,
		Path:     r.Path,
		Secure:   r.Secure,
		HttpOnly: r.HttpOnly,
	}
	if r.Expires != nil {
		c.Expires = *r.Expires
	}
	return c
}

func loadRecord(s Store) (record, bool, error) {
	var r record
	data, err := s.LoadSessionCookie()
	if err != nil {
		return r, false, err
	}
	if len(data) == 0 {
		return r, false, nil
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, false, err
	}
	return r, r.Value != "", nil
}

func saveRecord(s Store, r record) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.SaveSessionCookie(b)
}
