// Package config loads, validates, and normalizes sceneforge configuration.
//
// Configuration comes from a TOML file (~/.config/sceneforge/config.toml or a
// project-local sceneforge.toml), layered over built-in defaults, with
// credential environment variables applied last so the tool keeps the .env
// contract of its predecessors. Path fields are expanded and made absolute
// during normalization. Validation checks ranges and enums only; credential
// presence is enforced by the adapter constructors so read-only commands work
// without keys.
package config
