// Package backendtest runs an in-process SynBalance cluster for tests: several
// chi-routed instances behind a round-robin proxy, sharing one session table,
// the way the production instances share sessions behind the load balancer.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie the cluster issues.
const CookieName = "sessao_id"

// User is an account known to the cluster.
type User struct {
	Name     string
	Password string
}

type session struct {
	login   string
	loginAt time.Time
}

// Cluster is a running fake backend.
type Cluster struct {
	// URL is the proxy origin.
	URL string

	ProfileCalls atomic.Int64
	LoginCalls   atomic.Int64
	LogoutCalls  atomic.Int64

	mu            sync.Mutex
	loginGate     chan struct{}
	logoutStatus  int
	labelStatus   int
	profileStatus int
	now           func() time.Time
	users         map[string]User
	sessions      map[string]session
	nodes         []http.Handler
	labels        []string
	next          atomic.Uint64
	srv           *httptest.Server
}

// New starts a cluster with the given instance labels (at least one) and
// registers its shutdown with tb.
func New(tb testing.TB, labels ...string) *Cluster {
	tb.Helper()
	if len(labels) == 0 {
		labels = []string{"node-a"}
	}
	c := &Cluster{
		users:    map[string]User{},
		sessions: map[string]session{},
		labels:   labels,
		now:      func() time.Time { return LoginInstant },
	}
	for _, l := range labels {
		c.nodes = append(c.nodes, c.router(l))
	}
	c.srv = httptest.NewServer(http.HandlerFunc(c.proxy))
	c.URL = c.srv.URL
	tb.Cleanup(c.srv.Close)
	return c
}

// LoginInstant stamps every session the cluster creates.
var LoginInstant = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

// GateLogins makes every login request block until gate receives or is closed.
func (c *Cluster) GateLogins(gate chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loginGate = gate
}

// SetLogoutStatus overrides the logout response status; zero restores the default.
func (c *Cluster) SetLogoutStatus(code int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logoutStatus = code
}

// SetProfileStatus makes every profile request fail with code; zero restores
// the default behaviour.
func (c *Cluster) SetProfileStatus(code int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profileStatus = code
}

// SetLabelStatus overrides the server label response status; zero restores the default.
func (c *Cluster) SetLabelStatus(code int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.labelStatus = code
}

// AddUser registers an account.
func (c *Cluster) AddUser(login string, u User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[login] = u
}

// Sessions returns the number of live sessions.
func (c *Cluster) Sessions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

// Expire drops every session server-side, as if they timed out.
func (c *Cluster) Expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions = map[string]session{}
}

func (c *Cluster) proxy(w http.ResponseWriter, r *http.Request) {
	i := c.next.Add(1) - 1
	c.nodes[int(i%uint64(len(c.nodes)))].ServeHTTP(w, r)
}

func (c *Cluster) router(label string) http.Handler {
	r := chi.NewRouter()
	r.Get("/nome_servidor.txt", func(w http.ResponseWriter, _ *http.Request) {
		c.mu.Lock()
		status := c.labelStatus
		c.mu.Unlock()
		if status != 0 {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprintln(w, label)
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/perfil", c.profile)
		r.Post("/login", c.login)
		r.Post("/logout", c.logout)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (c *Cluster) payload(id string, s session) map[string]any {
	return map[string]any{
		"nome":       c.users[s.login].Name,
		"login":      s.login,
		"login_em":   s.loginAt.Format(time.RFC3339),
		"session_id": id,
	}
}

func (c *Cluster) profile(w http.ResponseWriter, r *http.Request) {
	c.ProfileCalls.Add(1)
	c.mu.Lock()
	status := c.profileStatus
	c.mu.Unlock()
	if status != 0 {
		w.WriteHeader(status)
		return
	}
	ck, err := r.Cookie(CookieName)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"erro": "Não autenticado"})
		return
	}
	c.mu.Lock()
	s, ok := c.sessions[ck.Value]
	var body map[string]any
	if ok {
		body = c.payload(ck.Value, s)
	}
	c.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"erro": "Sessão inválida"})
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (c *Cluster) login(w http.ResponseWriter, r *http.Request) {
	c.LoginCalls.Add(1)
	c.mu.Lock()
	gate := c.loginGate
	c.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}
	var in struct {
		Login string `json:"login"`
		Senha string `json:"senha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "erro": "Requisição inválida"})
		return
	}

	c.mu.Lock()
	u, ok := c.users[in.Login]
	if !ok || u.Password != in.Senha {
		c.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "erro": "Usuário ou senha inválidos"})
		return
	}
	id := uuid.NewString()
	s := session{login: in.Login, loginAt: c.now()}
	c.sessions[id] = s
	body := c.payload(id, s)
	c.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: id, Path: "/", HttpOnly: true})
	body["success"] = true
	writeJSON(w, http.StatusOK, body)
}

func (c *Cluster) logout(w http.ResponseWriter, r *http.Request) {
	c.LogoutCalls.Add(1)
	c.mu.Lock()
	if ck, err := r.Cookie(CookieName); err == nil {
		delete(c.sessions, ck.Value)
	}
	status := c.logoutStatus
	c.mu.Unlock()
	if status != 0 {
		w.WriteHeader(status)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
