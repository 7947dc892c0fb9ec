// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/net/publicsuffix"

	"synbalance/cli/internal/logging"
)

// Jar is the CLI's cookie store. It implements http.CookieJar for the backend
// client and exposes the session cookie to the session controller.
type Jar struct {
	mu     sync.Mutex
	inner  *cookiejar.Jar
	origin *url.URL
	name   string
	domain string
	store  Store
	log    *pterm.Logger
	now    func() time.Time
}

// JarOptions configures NewJar.
type JarOptions struct {
	// CookieName is the session cookie name (e.g. "sessao_id").
	CookieName string
	// CookieDomain is the Domain attribute used for the scoped clear on logout
	// (e.g. ".synbalance.com.br").
	CookieDomain string
	// Store persists the session cookie; nil keeps it in memory only.
	Store  Store
	Logger *pterm.Logger
}

// NewJar creates a jar for the given origin and restores a previously stored
// session cookie, if it has not expired.
func NewJar(origin string, opts JarOptions) (*Jar, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, err
	}
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	j := &Jar{
		inner:  inner,
		origin: u,
		name:   opts.CookieName,
		domain: opts.CookieDomain,
		store:  opts.Store,
		log:    opts.Logger,
		now:    time.Now,
	}
	if j.log == nil {
		j.log = logging.Discard()
	}
	j.restore()
	return j, nil
}

func (j *Jar) restore() {
	if j.store == nil {
		return
	}
	r, ok, err := loadRecord(j.store)
	if err != nil {
		j.log.Warn("could not read stored session cookie", j.log.Args("error", logging.Mask(err.Error())))
		return
	}
	if !ok || r.Name != j.name {
		return
	}
	if r.expired(j.now()) {
		j.log.Debug("stored session cookie expired")
		_ = j.store.ClearSession()
		return
	}
	j.inner.SetCookies(j.origin, []*http.Cookie{r.cookie()})
	j.log.Debug("restored session cookie", j.log.Args("domain", r.Domain, "path", r.Path))
}

// SetCookies implements http.CookieJar. Directives for the session cookie are
// mirrored into the persistent store.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)
	for _, c := range cookies {
		if c.Name != j.name {
			continue
		}
		j.persist(c)
	}
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

func (j *Jar) persist(c *http.Cookie) {
	if j.store == nil {
		return
	}
	r, ok := recordFrom(c, j.now())
	if !ok {
		if err := j.store.ClearSession(); err != nil {
			j.log.Warn("could not drop stored session cookie", j.log.Args("error", err.Error()))
		}
		return
	}
	if err := saveRecord(j.store, r); err != nil {
		j.log.Warn("could not store session cookie", j.log.Args("error", logging.Mask(err.Error())))
	}
}

// SessionID returns the current session cookie value as the origin would receive it.
func (j *Jar) SessionID() (string, bool) {
	for _, c := range j.inner.Cookies(j.origin) {
		if c.Name == j.name && c.Value != "" {
			return c.Value, true
		}
	}
	return "", false
}

// ClearSession expires the session cookie twice: once scoped to the configured
// domain and once host-only, since the issuing Domain attribute is not known.
// A scoped clear whose domain does not match the origin is dropped by the jar,
// exactly as a browser would drop it.
func (j *Jar) ClearSession() {
	j.mu.Lock()
	defer j.mu.Unlock()

	var clears []*http.Cookie
	if j.domain != "" {
		clears = append(clears, &http.Cookie{Name: j.name, Path: "/", Domain: j.domain, MaxAge: -1})
	}
	clears = append(clears, &http.Cookie{Name: j.name, Path: "/", MaxAge: -1})
	j.inner.SetCookies(j.origin, clears)

	if j.store != nil {
		if err := j.store.ClearSession(); err != nil {
			j.log.Warn("could not drop stored session cookie", j.log.Args("error", err.Error()))
		}
	}
}
