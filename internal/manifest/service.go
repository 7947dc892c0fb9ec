package manifest

import (
	"fmt"
	"net/url"

	"synbalance/cli/internal/config"
)

// FromConfig builds the manifest for the configured origin, applying any
// endpoint overrides on top of the defaults.
func FromConfig(c config.Config) (*Manifest, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: missing host", c.BaseURL)
	}

	overrides := HTTPEndpoints{
		Profile:    c.Endpoints.Profile,
		Login:      c.Endpoints.Login,
		Logout:     c.Endpoints.Logout,
		ServerName: c.Endpoints.ServerName,
	}
	return &Manifest{
		Origin: c.BaseURL,
		HTTP:   overrides.Merge(DefaultEndpoints()),
	}, nil
}
