package cmd

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synbalance/cli/internal/backend"
	"synbalance/cli/internal/backend/backendtest"
	"synbalance/cli/internal/config"
	"synbalance/cli/internal/keychain"
	"synbalance/cli/internal/session"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	m.Run()
}

func testConfig(url string) config.Config {
	cfg := config.Defaults()
	cfg.BaseURL = url
	cfg.HTTPTimeout = 2 * time.Second
	cfg.Timezone = "America/Sao_Paulo"
	return cfg
}

func TestBuildAppLoginRoundTrip(t *testing.T) {
	c := backendtest.New(t, "node-a", "node-b")
	c.AddUser("ana", backendtest.User{Name: "Ana Souza", Password: "s3nh@"})
	store := keychain.NewMemoryManager()
	var out bytes.Buffer
	ctx := context.Background()

	a, err := buildApp(testConfig(c.URL), store, &out)
	require.NoError(t, err)
	defer a.close()

	require.NoError(t, a.ctrl.Initialize(ctx))
	require.NoError(t, a.ctrl.SubmitLogin(ctx, "ana", "s3nh@"))
	s := a.ctrl.Current()
	require.True(t, s.LoggedIn())

	require.NoError(t, renderProfile(&out, s.Profile, a.loc))
	assert.Contains(t, out.String(), "Ana Souza")
	assert.Contains(t, out.String(), "14/03/2025 12:09:26")
	assert.Contains(t, out.String(), s.Profile.SessionID)

	// a second invocation restores the session from the store
	b, err := buildApp(testConfig(c.URL), store, &out)
	require.NoError(t, err)
	require.NoError(t, b.ctrl.Initialize(ctx))
	assert.Equal(t, s.Profile.SessionID, b.ctrl.Current().Profile.SessionID)

	require.NoError(t, b.ctrl.SubmitLogout(ctx))
	assert.Equal(t, 0, c.Sessions())
}

func TestLogoutReachesServerWhenCheckFails(t *testing.T) {
	c := backendtest.New(t, "node-a", "node-b")
	c.AddUser("ana", backendtest.User{Name: "Ana", Password: "x"})
	store := keychain.NewMemoryManager()
	ctx := context.Background()

	a, err := buildApp(testConfig(c.URL), store, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, a.ctrl.SubmitLogin(ctx, "ana", "x"))
	require.Equal(t, 1, c.Sessions())

	// the next invocation cannot confirm the session: one instance answers 502
	c.SetProfileStatus(http.StatusBadGateway)
	b, err := buildApp(testConfig(c.URL), store, &bytes.Buffer{})
	require.NoError(t, err)

	confirmed, err := runLogout(ctx, b)
	require.NoError(t, err)
	assert.False(t, confirmed)
	assert.EqualValues(t, 1, c.LogoutCalls.Load())
	assert.Equal(t, 0, c.Sessions())
	_, ok := b.jar.SessionID()
	assert.False(t, ok)
}

func TestLogoutConfirmedSession(t *testing.T) {
	c := backendtest.New(t, "node-a")
	c.AddUser("ana", backendtest.User{Name: "Ana", Password: "x"})
	store := keychain.NewMemoryManager()
	ctx := context.Background()

	a, err := buildApp(testConfig(c.URL), store, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, a.ctrl.SubmitLogin(ctx, "ana", "x"))

	b, err := buildApp(testConfig(c.URL), store, &bytes.Buffer{})
	require.NoError(t, err)
	confirmed, err := runLogout(ctx, b)
	require.NoError(t, err)
	assert.True(t, confirmed)
	assert.Equal(t, 0, c.Sessions())
}

func TestLogoutWithoutCookieStaysLocal(t *testing.T) {
	c := backendtest.New(t, "node-a")
	b, err := buildApp(testConfig(c.URL), keychain.NewMemoryManager(), &bytes.Buffer{})
	require.NoError(t, err)

	confirmed, err := runLogout(context.Background(), b)
	require.NoError(t, err)
	assert.False(t, confirmed)
	assert.EqualValues(t, 0, c.LogoutCalls.Load())
}

func TestBuildAppRejectsBadURL(t *testing.T) {
	_, err := buildApp(testConfig("ftp://example.test"), keychain.NewMemoryManager(), &bytes.Buffer{})
	require.Error(t, err)
}

func TestRenderProfilePlaceholders(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, renderProfile(&out, backend.Profile{Name: "Ana"}, time.UTC))
	assert.Contains(t, out.String(), "Servidor")
	assert.Contains(t, out.String(), "-")
}

func TestMenuFollowsState(t *testing.T) {
	anon := session.State{}
	assert.Contains(t, menuOptions(anon), optLogin)
	assert.NotContains(t, menuOptions(anon), optLogout)
	assert.Equal(t, "Não autenticado @ node-a", menuTitle(anon, "node-a"))

	failed := session.State{Error: backend.MsgInvalidCredentials}
	assert.Contains(t, menuTitle(failed, ""), backend.MsgInvalidCredentials)

	in := session.State{Phase: session.Authenticated, Profile: backend.Profile{Name: "Ana", Login: "ana"}}
	assert.Equal(t, []string{optProfile, optServer, optLogout, optQuit}, menuOptions(in))
	assert.Equal(t, "Ana (ana) @ node-b", menuTitle(in, "node-b"))
}

func TestPhaseText(t *testing.T) {
	assert.Equal(t, "Autenticando", phaseText(session.Authenticating))
	assert.Empty(t, phaseText(session.Authenticated))
}

func TestStateViewSilentWithoutTerminal(t *testing.T) {
	var out bytes.Buffer
	v := newStateView(&out)
	v.observe(session.State{Phase: session.Checking})
	v.observe(session.State{Phase: session.Anonymous})
	v.stop()
	assert.Empty(t, out.String())
}
