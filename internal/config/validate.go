package config

import (
	"errors"
	"fmt"
	"strings"
)

var knownAspectRatios = map[string]struct{}{
	"16:9": {},
	"9:16": {},
	"1:1":  {},
}

// Validate ensures the configuration is usable. Credential presence is not
// checked here; adapters fail fast at construction instead, so commands that
// only read project state work without keys.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateVeo(); err != nil {
		return err
	}
	if err := c.validateElevenLabs(); err != nil {
		return err
	}
	if err := c.validateDID(); err != nil {
		return err
	}
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateYouTube(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.ProjectRoot) == "" {
		return errors.New("paths.project_root must be set")
	}
	return nil
}

func (c *Config) validateVeo() error {
	if c.Veo.DurationSeconds <= 0 {
		return errors.New("veo.duration_seconds must be positive")
	}
	if _, ok := knownAspectRatios[c.Veo.AspectRatio]; !ok {
		return fmt.Errorf("veo.aspect_ratio %q is not supported (use 16:9, 9:16, or 1:1)", c.Veo.AspectRatio)
	}
	return ensurePositiveMap(map[string]int{
		"veo.poll_interval": c.Veo.PollInterval,
		"veo.timeout":       c.Veo.Timeout,
	})
}

func (c *Config) validateElevenLabs() error {
	if c.ElevenLabs.Stability < 0 || c.ElevenLabs.Stability > 1 {
		return errors.New("elevenlabs.stability must be between 0 and 1")
	}
	if c.ElevenLabs.SimilarityBoost < 0 || c.ElevenLabs.SimilarityBoost > 1 {
		return errors.New("elevenlabs.similarity_boost must be between 0 and 1")
	}
	return ensurePositiveMap(map[string]int{
		"elevenlabs.request_timeout": c.ElevenLabs.RequestTimeout,
	})
}

func (c *Config) validateDID() error {
	return ensurePositiveMap(map[string]int{
		"did.poll_interval": c.DID.PollInterval,
		"did.timeout":       c.DID.Timeout,
	})
}

func (c *Config) validateFFmpeg() error {
	if c.FFmpeg.ProResProfile < 0 || c.FFmpeg.ProResProfile > 3 {
		return errors.New("ffmpeg.prores_profile must be between 0 (Proxy) and 3 (422 HQ)")
	}
	return ensurePositiveMap(map[string]int{
		"ffmpeg.timeout": c.FFmpeg.Timeout,
	})
}

func (c *Config) validateYouTube() error {
	if !c.YouTube.Enabled {
		return nil
	}
	if strings.TrimSpace(c.YouTube.ClientSecretsFile) == "" {
		return errors.New("youtube.client_secrets_file must be set when youtube.enabled is true")
	}
	if strings.TrimSpace(c.YouTube.TokenFile) == "" {
		return errors.New("youtube.token_file must be set when youtube.enabled is true")
	}
	switch c.YouTube.PrivacyStatus {
	case "public", "unlisted", "private":
	default:
		return fmt.Errorf("youtube.privacy_status %q is not supported", c.YouTube.PrivacyStatus)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported", c.Logging.Format)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for name, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
