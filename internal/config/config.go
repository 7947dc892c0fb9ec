// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session cookie goes to the OS keychain.
//
// Values are resolved in three layers: built-in defaults, then config.json,
// then SYNBALANCE_* environment variables (an optional .env file is loaded first).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	// Embedded zone database so the display timezone resolves on any host.
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"synbalance/cli/internal/xdg"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	// BaseURL is the origin of the reverse proxy; every endpoint is resolved against it.
	BaseURL        string        `json:"base_url" env:"SYNBALANCE_URL"`
	LogLevel       string        `json:"log_level" env:"SYNBALANCE_LOG_LEVEL"`
	HTTPTimeout    time.Duration `json:"http_timeout" env:"SYNBALANCE_HTTP_TIMEOUT"`
	Timezone       string        `json:"timezone" env:"SYNBALANCE_TIMEZONE"`
	PersistSession bool          `json:"persist_session" env:"SYNBALANCE_PERSIST_SESSION"`
	Cookie         CookieConfig  `json:"cookie"`
	Endpoints      EndpointPaths `json:"endpoints"`
}

// CookieConfig names the shared session cookie.
type CookieConfig struct {
	Name   string `json:"name" env:"SYNBALANCE_COOKIE_NAME"`
	Domain string `json:"domain" env:"SYNBALANCE_COOKIE_DOMAIN"`
}

// EndpointPaths overrides the origin-relative paths of the backend API.
// Empty values keep the built-in defaults.
type EndpointPaths struct {
	Profile    string `json:"profile" env:"SYNBALANCE_PATH_PROFILE"`
	Login      string `json:"login" env:"SYNBALANCE_PATH_LOGIN"`
	Logout     string `json:"logout" env:"SYNBALANCE_PATH_LOGOUT"`
	ServerName string `json:"server_name" env:"SYNBALANCE_PATH_SERVER_NAME"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BaseURL:        "http://localhost",
		LogLevel:       "warn",
		HTTPTimeout:    10 * time.Second,
		Timezone:       "America/Sao_Paulo",
		PersistSession: true,
		Cookie: CookieConfig{
			Name:   "sessao_id",
			Domain: ".synbalance.com.br",
		},
	}
}

var dotenvOnce sync.Once

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing file yields defaults, and environment
// variables always take precedence over the file.
func Load() (Config, error) {
	c, err := LoadFile()
	if err != nil {
		return c, err
	}
	return c, applyEnv(&c)
}

// LoadFile reads defaults and config.json only, without the environment
// overlay. It is the base for edits that are written back with Save.
func LoadFile() (Config, error) {
	c := Defaults()
	p, err := Path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse %s: %w", p, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return c, err
	}
	return c, nil
}

// applyEnv overlays SYNBALANCE_* variables. Fields without a matching variable
// keep their current value.
func applyEnv(c *Config) error {
	dotenvOnce.Do(func() {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	})
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Location resolves the display timezone, falling back to UTC when the zone
// database does not know the configured name.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
