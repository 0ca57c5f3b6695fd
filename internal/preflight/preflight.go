// Package preflight verifies that credentials, binaries, and directories are
// in place before a pipeline run, and guards a project directory with a
// single-process lock.
package preflight

import (
	"sceneforge/internal/config"
	"sceneforge/internal/deps"
)

// Result reports the outcome of a single readiness check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every readiness check applicable to the given config.
// Checks are local only: credential presence, not validity.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Project root", cfg.Paths.ProjectRoot),
		CheckCredential("Google API key", cfg.Veo.APIKey),
		CheckCredential("ElevenLabs API key", cfg.ElevenLabs.APIKey),
		CheckCredential("D-ID API key", cfg.DID.APIKey),
	}

	for _, status := range deps.CheckBinaries([]deps.Requirement{
		deps.FFmpegRequirement(cfg.FFmpeg.Binary),
	}) {
		results = append(results, Result{
			Name:   status.Name,
			Passed: status.Available,
			Detail: binaryDetail(status),
		})
	}

	if cfg.YouTube.Enabled {
		results = append(results,
			CheckFileExists("YouTube client secrets", cfg.YouTube.ClientSecretsFile),
			CheckFileExists("YouTube token", cfg.YouTube.TokenFile),
		)
	}

	return results
}

func binaryDetail(status deps.Status) string {
	if status.Available {
		return status.Command
	}
	return status.Detail
}
