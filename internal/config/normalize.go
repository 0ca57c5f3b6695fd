package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnvOverrides()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeServices()
	c.normalizeLogging()
	return nil
}

// applyEnvOverrides layers credential and path environment variables over the
// file values, preserving the original tool's .env contract.
func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")); v != "" {
		c.Veo.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("VEO_MODEL")); v != "" {
		c.Veo.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("ELEVENLABS_API_KEY")); v != "" {
		c.ElevenLabs.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("ELEVENLABS_VOICE_ID")); v != "" {
		c.ElevenLabs.VoiceID = v
	}
	if v := strings.TrimSpace(os.Getenv("DID_API_KEY")); v != "" {
		c.DID.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("SCENEFORGE_PROJECT_ROOT")); v != "" {
		c.Paths.ProjectRoot = v
	}
	if v := strings.TrimSpace(os.Getenv("FFMPEG_PRORES_PROFILE")); v != "" {
		if profile, err := strconv.Atoi(v); err == nil {
			c.FFmpeg.ProResProfile = profile
		}
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.ProjectRoot, err = expandPath(c.Paths.ProjectRoot); err != nil {
		return fmt.Errorf("paths.project_root: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.YouTube.ClientSecretsFile != "" {
		if c.YouTube.ClientSecretsFile, err = expandPath(c.YouTube.ClientSecretsFile); err != nil {
			return fmt.Errorf("youtube.client_secrets_file: %w", err)
		}
	}
	if c.YouTube.TokenFile != "" {
		if c.YouTube.TokenFile, err = expandPath(c.YouTube.TokenFile); err != nil {
			return fmt.Errorf("youtube.token_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeServices() {
	c.Veo.BaseURL = strings.TrimRight(strings.TrimSpace(c.Veo.BaseURL), "/")
	if c.Veo.BaseURL == "" {
		c.Veo.BaseURL = defaultVeoBaseURL
	}
	if strings.TrimSpace(c.Veo.Model) == "" {
		c.Veo.Model = defaultVeoModel
	}
	c.ElevenLabs.BaseURL = strings.TrimRight(strings.TrimSpace(c.ElevenLabs.BaseURL), "/")
	if c.ElevenLabs.BaseURL == "" {
		c.ElevenLabs.BaseURL = defaultElevenLabsBaseURL
	}
	if strings.TrimSpace(c.ElevenLabs.VoiceID) == "" {
		c.ElevenLabs.VoiceID = defaultElevenLabsVoiceID
	}
	if strings.TrimSpace(c.ElevenLabs.ModelID) == "" {
		c.ElevenLabs.ModelID = defaultElevenLabsModelID
	}
	c.DID.BaseURL = strings.TrimRight(strings.TrimSpace(c.DID.BaseURL), "/")
	if c.DID.BaseURL == "" {
		c.DID.BaseURL = defaultDIDBaseURL
	}
	if strings.TrimSpace(c.FFmpeg.Binary) == "" {
		c.FFmpeg.Binary = defaultFFmpegBinary
	}
	if strings.TrimSpace(c.YouTube.PrivacyStatus) == "" {
		c.YouTube.PrivacyStatus = defaultYouTubePrivacyStatus
	}
	if strings.TrimSpace(c.YouTube.CategoryID) == "" {
		c.YouTube.CategoryID = defaultYouTubeCategoryID
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
