package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synbalance/cli/internal/auth"
	"synbalance/cli/internal/backend"
	"synbalance/cli/internal/backend/backendtest"
	"synbalance/cli/internal/keychain"
	"synbalance/cli/internal/manifest"
	"synbalance/cli/internal/session"
)

type client struct {
	ctrl  *session.Controller
	jar   *auth.Jar
	store *keychain.Manager
}

func dial(t *testing.T, c *backendtest.Cluster, store *keychain.Manager) client {
	t.Helper()
	m := &manifest.Manifest{Origin: c.URL, HTTP: manifest.DefaultEndpoints()}
	jar, err := auth.NewJar(m.HTTPBaseURL(), auth.JarOptions{CookieName: backendtest.CookieName, Store: store})
	require.NoError(t, err)
	api := backend.New(m, backend.Options{Jar: jar, Timeout: 2 * time.Second})
	return client{
		ctrl:  session.New(api, jar, session.WithLabeler(api)),
		jar:   jar,
		store: store,
	}
}

func TestSessionSurvivesAcrossInstancesAndRestarts(t *testing.T) {
	c := backendtest.New(t, "node-a", "node-b", "node-c")
	c.AddUser("ana", backendtest.User{Name: "Ana Souza", Password: "s3nh@"})
	store := keychain.NewMemoryManager()
	ctx := context.Background()

	first := dial(t, c, store)
	require.NoError(t, first.ctrl.Initialize(ctx))
	require.Equal(t, session.Anonymous, first.ctrl.Current().Phase)

	require.NoError(t, first.ctrl.SubmitLogin(ctx, "ana", "s3nh@"))
	s := first.ctrl.Current()
	require.Equal(t, session.Authenticated, s.Phase)
	id, ok := first.jar.SessionID()
	require.True(t, ok)
	assert.Equal(t, id, s.Profile.SessionID)
	assert.Contains(t, []string{"node-a", "node-b", "node-c"}, s.Profile.Server)

	// a new process restores the cookie from the keychain and lands on another node
	second := dial(t, c, store)
	require.NoError(t, second.ctrl.Initialize(ctx))
	restored := second.ctrl.Current()
	require.Equal(t, session.Authenticated, restored.Phase)
	assert.Equal(t, s.Profile.Name, restored.Profile.Name)
	assert.Equal(t, s.Profile.SessionID, restored.Profile.SessionID)
	assert.Equal(t, s.Profile.LoginAt, restored.Profile.LoginAt)

	require.NoError(t, second.ctrl.SubmitLogout(ctx))
	assert.Equal(t, session.State{}, second.ctrl.Current())
	assert.Equal(t, 0, c.Sessions())
	_, ok = second.jar.SessionID()
	assert.False(t, ok)
	data, err := store.LoadSessionCookie()
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestExpiredSessionSettlesAnonymous(t *testing.T) {
	c := backendtest.New(t, "node-a")
	c.AddUser("ana", backendtest.User{Name: "Ana", Password: "x"})
	store := keychain.NewMemoryManager()
	ctx := context.Background()

	first := dial(t, c, store)
	require.NoError(t, first.ctrl.Initialize(ctx))
	require.NoError(t, first.ctrl.SubmitLogin(ctx, "ana", "x"))
	c.Expire()

	second := dial(t, c, store)
	require.NoError(t, second.ctrl.Initialize(ctx))
	assert.Equal(t, session.Anonymous, second.ctrl.Current().Phase)
	assert.Empty(t, second.ctrl.Current().Error)
}

func TestGatedLoginAgainstClusterIssuesOneRequest(t *testing.T) {
	c := backendtest.New(t, "node-a", "node-b")
	c.AddUser("ana", backendtest.User{Name: "Ana", Password: "x"})
	gate := make(chan struct{})
	c.GateLogins(gate)
	cl := dial(t, c, keychain.NewMemoryManager())
	ctx := context.Background()
	require.NoError(t, cl.ctrl.Initialize(ctx))

	done := make(chan error, 1)
	go func() { done <- cl.ctrl.SubmitLogin(ctx, "ana", "x") }()
	require.Eventually(t, func() bool { return c.LoginCalls.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, cl.ctrl.SubmitLogin(ctx, "ana", "x"), session.ErrIgnored)
	}
	close(gate)
	require.NoError(t, <-done)
	assert.EqualValues(t, 1, c.LoginCalls.Load())
	assert.Equal(t, session.Authenticated, cl.ctrl.Current().Phase)
}

func TestRejectedLoginAgainstCluster(t *testing.T) {
	c := backendtest.New(t, "node-a")
	c.AddUser("ana", backendtest.User{Name: "Ana", Password: "certa"})
	var notified []error
	m := &manifest.Manifest{Origin: c.URL, HTTP: manifest.DefaultEndpoints()}
	jar, err := auth.NewJar(m.HTTPBaseURL(), auth.JarOptions{CookieName: backendtest.CookieName})
	require.NoError(t, err)
	api := backend.New(m, backend.Options{Jar: jar, Timeout: 2 * time.Second})
	ctrl := session.New(api, jar, session.WithNotifier(session.NotifierFunc(func(err error) {
		notified = append(notified, err)
	})))

	require.Error(t, ctrl.SubmitLogin(context.Background(), "ana", "errada"))
	assert.Equal(t, backend.MsgInvalidCredentials, ctrl.Current().Error)
	require.Len(t, notified, 1)
}
