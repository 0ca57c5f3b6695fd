package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"sceneforge/internal/config"
	"sceneforge/internal/logging"
	"sceneforge/internal/media"
	"sceneforge/internal/pipeline"
	"sceneforge/internal/scenestore"
	"sceneforge/internal/services/did"
	"sceneforge/internal/services/elevenlabs"
	"sceneforge/internal/services/veo"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			OutputPaths: []string{
				"stderr",
				filepath.Join(cfg.Paths.LogDir, "sceneforge.log"),
			},
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) openStore() (*scenestore.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return scenestore.Open(cfg.Paths.ProjectRoot, logger)
}

// buildRunner wires the pipeline from configuration. Speech and lip-sync
// adapters are only constructed when their credentials are configured;
// dialogue-free projects can run without them.
func (c *commandContext) buildRunner() (*pipeline.Runner, *scenestore.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	store, err := scenestore.Open(cfg.Paths.ProjectRoot, logger)
	if err != nil {
		return nil, nil, err
	}

	videoClient, err := veo.NewClient(cfg.Veo.APIKey, cfg.Veo.Model, veo.WithBaseURL(cfg.Veo.BaseURL))
	if err != nil {
		return nil, nil, err
	}
	transcoder, err := media.NewTranscoder(cfg.FFmpeg.Binary, cfg.FFmpeg.ProResProfile, cfg.FFmpeg.Timeout)
	if err != nil {
		return nil, nil, err
	}

	runnerCfg := pipeline.RunnerConfig{
		Store:               store,
		Video:               videoClient,
		Transcoder:          transcoder,
		Downloader:          media.NewDownloader(time.Duration(cfg.DID.Timeout) * time.Second),
		Logger:              logger,
		VideoPollInterval:   time.Duration(cfg.Veo.PollInterval) * time.Second,
		VideoPollTimeout:    time.Duration(cfg.Veo.Timeout) * time.Second,
		LipSyncPollInterval: time.Duration(cfg.DID.PollInterval) * time.Second,
		LipSyncPollTimeout:  time.Duration(cfg.DID.Timeout) * time.Second,
		DurationSeconds:     cfg.Veo.DurationSeconds,
		AspectRatio:         cfg.Veo.AspectRatio,
		DefaultVoiceID:      cfg.ElevenLabs.VoiceID,
	}

	if strings.TrimSpace(cfg.ElevenLabs.APIKey) != "" {
		speech, err := c.speechClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		runnerCfg.Speech = speech
	}
	if strings.TrimSpace(cfg.DID.APIKey) != "" {
		lipsync, err := did.NewClient(cfg.DID.APIKey, did.WithBaseURL(cfg.DID.BaseURL))
		if err != nil {
			return nil, nil, err
		}
		runnerCfg.LipSync = lipsync
	}

	runner, err := pipeline.NewRunner(runnerCfg)
	if err != nil {
		return nil, nil, err
	}
	return runner, store, nil
}

func (c *commandContext) speechClient(cfg *config.Config) (*elevenlabs.Client, error) {
	return elevenlabs.NewClient(
		cfg.ElevenLabs.APIKey,
		cfg.ElevenLabs.ModelID,
		elevenlabs.VoiceSettings{
			Stability:       cfg.ElevenLabs.Stability,
			SimilarityBoost: cfg.ElevenLabs.SimilarityBoost,
		},
		elevenlabs.WithBaseURL(cfg.ElevenLabs.BaseURL),
		elevenlabs.WithTimeout(time.Duration(cfg.ElevenLabs.RequestTimeout)*time.Second),
	)
}
