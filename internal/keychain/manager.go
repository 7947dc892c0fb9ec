// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides thread-safe OS keychain operations for synbalance.
// The only secret the CLI keeps is the shared session cookie, which stands in for
// the browser's cookie store between process runs.
//
// Supported stores are macOS Keychain (native `security` command first, keyring
// library second), Windows Credential Manager and, on Linux, Secret Service,
// KWallet or pass. When none is available callers fall back to NewMemoryManager,
// which keeps the cookie for the lifetime of the process only.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu      sync.RWMutex
	ring    keyring.Keyring
	backend keychainBackend
}

// keychainBackend defines the interface for keychain operations.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "synbalance"

// KeySessionCookie is the keychain entry holding the serialized session cookie.
const KeySessionCookie = "session_cookie"

var (
	// ErrUnsupported is returned when the platform offers no usable secret store.
	ErrUnsupported = errors.New("secure storage not available on this system")

	errKeyNotFound = errors.New("key not found")
)

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	// Try native security backend first on macOS
	if runtime.GOOS == "darwin" {
		backend, err := newSecurityBackend()
		if err == nil {
			return &Manager{backend: backend}, nil
		}
		// Fall through to keyring library if security command fails
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// NewMemoryManager returns a manager backed by an in-process keyring.
// Nothing survives process exit.
func NewMemoryManager() *Manager {
	return &Manager{ring: keyring.NewArrayKeyring(nil)}
}

// allowedBackends lists the native backends tried on the current platform.
func allowedBackends() []keyring.BackendType {
	switch runtime.GOOS {
	case "darwin":
		// pass is the fallback on macOS 26.0+ where the Keychain API may be unavailable
		return []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend}
	case "linux", "freebsd", "openbsd":
		return []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
	default:
		return nil
	}
}

// openRing opens the OS keyring using native platform backends only; there is
// deliberately no encrypted-file fallback.
func openRing() (keyring.Keyring, error) {
	backends := allowedBackends()
	if len(backends) == 0 {
		return nil, ErrUnsupported
	}

	cfg := keyring.Config{
		ServiceName:             ServiceName,
		AllowedBackends:         backends,
		PassPrefix:              ServiceName,
		LibSecretCollectionName: ServiceName,
		KWalletAppID:            ServiceName,
		KWalletFolder:           ServiceName,
	}
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if errors.Is(err, keyring.ErrNoAvailImpl) {
			return nil, ErrUnsupported
		}
		return nil, err
	}
	return ring, nil
}

// SaveSessionCookie stores the serialized session cookie.
// This method is thread-safe.
func (m *Manager) SaveSessionCookie(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		return m.backend.Set(KeySessionCookie, string(data))
	}
	return m.ring.Set(keyring.Item{Key: KeySessionCookie, Data: data, Label: "SynBalance session"})
}

// LoadSessionCookie retrieves the serialized session cookie.
// A missing entry yields (nil, nil).
// This method is thread-safe.
func (m *Manager) LoadSessionCookie() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.backend != nil {
		data, err := m.backend.Get(KeySessionCookie)
		if err != nil {
			if errors.Is(err, errKeyNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return []byte(data), nil
	}

	it, err := m.ring.Get(KeySessionCookie)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return it.Data, nil
}

// ClearSession removes the stored session cookie. Missing entries are not an error.
// This method is thread-safe.
func (m *Manager) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		return m.backend.Delete(KeySessionCookie)
	}
	if err := m.ring.Remove(KeySessionCookie); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
