package keychain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryManagerSessionCookieLifecycle(t *testing.T) {
	m := NewMemoryManager()

	data, err := m.LoadSessionCookie()
	require.NoError(t, err)
	require.Nil(t, data)

	require.NoError(t, m.SaveSessionCookie([]byte(`{"value":"abc"}`)))
	data, err = m.LoadSessionCookie()
	require.NoError(t, err)
	require.JSONEq(t, `{"value":"abc"}`, string(data))

	require.NoError(t, m.SaveSessionCookie([]byte(`{"value":"def"}`)))
	data, err = m.LoadSessionCookie()
	require.NoError(t, err)
	require.JSONEq(t, `{"value":"def"}`, string(data))

	require.NoError(t, m.ClearSession())
	require.NoError(t, m.ClearSession(), "clearing twice is not an error")

	data, err = m.LoadSessionCookie()
	require.NoError(t, err)
	require.Nil(t, data)
}

type fakeBackend struct{ items map[string]string }

func (f *fakeBackend) Set(key, value string) error { f.items[key] = value; return nil }
func (f *fakeBackend) Get(key string) (string, error) {
	v, ok := f.items[key]
	if !ok {
		return "", errKeyNotFound
	}
	return v, nil
}
func (f *fakeBackend) Delete(key string) error { delete(f.items, key); return nil }

func TestNativeBackendMissingKeyIsEmpty(t *testing.T) {
	m := &Manager{backend: &fakeBackend{items: map[string]string{}}}

	data, err := m.LoadSessionCookie()
	require.NoError(t, err)
	require.Nil(t, data)

	require.NoError(t, m.SaveSessionCookie([]byte("x")))
	data, err = m.LoadSessionCookie()
	require.NoError(t, err)
	require.Equal(t, []byte("x"), data)
}
