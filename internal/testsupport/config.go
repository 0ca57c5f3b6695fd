// Package testsupport provides shared constructors for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"sceneforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ProjectRoot = filepath.Join(base, "project")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Veo.APIKey = "test-veo-key"
	cfg.ElevenLabs.APIKey = "test-elevenlabs-key"
	cfg.DID.APIKey = "test-did-key"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithoutCredentials clears all service credentials on the test config.
func WithoutCredentials() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Veo.APIKey = ""
		cfg.ElevenLabs.APIKey = ""
		cfg.DID.APIKey = ""
	}
}
