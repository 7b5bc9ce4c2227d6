// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"fmt"
)

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigPath is the explicit search location; it has priority when set.
	ConfigPath string
	// SearchRoot is the fallback search location.
	SearchRoot string
	// WorkDir resolves relative ConfigPath and SearchRoot values.
	WorkDir string
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (Resolved, error)
}

type fileProvider struct{}

// NewProvider creates a provider that searches the filesystem for fmtbridge.toml.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load resolves configuration with ResolveWithFallback.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (Resolved, error) {
	select {
	case <-ctx.Done():
		return Resolved{}, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	return ResolveWithFallback(opts.ConfigPath, opts.SearchRoot, opts.WorkDir)
}
