package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sceneforge/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sceneforge.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Veo.Model != "veo-3.0-generate-001" {
		t.Fatalf("unexpected default model: %s", cfg.Veo.Model)
	}
	if cfg.FFmpeg.ProResProfile != 2 {
		t.Fatalf("unexpected default profile: %d", cfg.FFmpeg.ProResProfile)
	}
	if !filepath.IsAbs(cfg.Paths.ProjectRoot) {
		t.Fatalf("expected absolute project root, got %s", cfg.Paths.ProjectRoot)
	}
}

func TestLoadParsesFile(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, `
[paths]
project_root = "`+root+`"

[veo]
duration_seconds = 8
aspect_ratio = "9:16"

[ffmpeg]
prores_profile = 3
`)
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %s, got %s (%v)", path, resolved, exists)
	}
	if cfg.Veo.DurationSeconds != 8 || cfg.Veo.AspectRatio != "9:16" {
		t.Fatalf("unexpected veo config: %+v", cfg.Veo)
	}
	if cfg.FFmpeg.ProResProfile != 3 {
		t.Fatalf("unexpected profile: %d", cfg.FFmpeg.ProResProfile)
	}
	if cfg.Paths.ProjectRoot != root {
		t.Fatalf("unexpected project root: %s", cfg.Paths.ProjectRoot)
	}
}

func TestEnvOverridesApplyLast(t *testing.T) {
	path := writeConfig(t, `
[elevenlabs]
api_key = "from-file"
voice_id = "file-voice"
`)
	t.Setenv("ELEVENLABS_API_KEY", "from-env")
	t.Setenv("DID_API_KEY", "did-env")

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ElevenLabs.APIKey != "from-env" {
		t.Fatalf("expected env override, got %s", cfg.ElevenLabs.APIKey)
	}
	if cfg.ElevenLabs.VoiceID != "file-voice" {
		t.Fatalf("expected file voice preserved, got %s", cfg.ElevenLabs.VoiceID)
	}
	if cfg.DID.APIKey != "did-env" {
		t.Fatalf("expected did env key, got %s", cfg.DID.APIKey)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*config.Config)
		message string
	}{
		{"profile", func(c *config.Config) { c.FFmpeg.ProResProfile = 9 }, "prores_profile"},
		{"aspect", func(c *config.Config) { c.Veo.AspectRatio = "4:3" }, "aspect_ratio"},
		{"stability", func(c *config.Config) { c.ElevenLabs.Stability = 1.5 }, "stability"},
		{"poll", func(c *config.Config) { c.DID.PollInterval = 0 }, "did.poll_interval"},
		{"format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"youtube", func(c *config.Config) { c.YouTube.Enabled = true }, "client_secrets_file"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.message) {
				t.Fatalf("expected error mentioning %q, got %v", tc.message, err)
			}
		})
	}
}

func TestCreateSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[veo]") {
		t.Fatal("expected sample to include veo section")
	}
	if err := config.CreateSample(path); err == nil {
		t.Fatal("expected error on second CreateSample")
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	expanded, err := config.ExpandPath("~/projects")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if expanded != filepath.Join(home, "projects") {
		t.Fatalf("unexpected expansion: %s", expanded)
	}
}
