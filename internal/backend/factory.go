// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"synbalance/cli/internal/manifest"
)

// New creates the HTTP backend client for the manifest's origin.
func New(m *manifest.Manifest, opts Options) *HTTP {
	return newHTTP(m.HTTPBaseURL(), m.HTTP, opts)
}
