package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"sceneforge/internal/fileutil"
	"sceneforge/internal/logging"
	"sceneforge/internal/polling"
	"sceneforge/internal/scenedef"
	"sceneforge/internal/scenestore"
	"sceneforge/internal/services"
)

// Manifest maps artifact names to local paths for one completed scene. It
// always carries ManifestSceneID, ManifestScenePath, and the final mezzanine
// path under scenestore.ArtifactFinalProRes.
type Manifest map[string]string

const (
	ManifestSceneID   = "scene_id"
	ManifestScenePath = "scene_path"
)

// Options tunes a single Process or RunAll invocation.
type Options struct {
	// VoiceID overrides the configured default voice for dialogue synthesis.
	VoiceID string
	// SkipLipSync stops after audio synthesis; the pre-lip-sync mezzanine
	// becomes the final artifact.
	SkipLipSync bool
}

// RunnerConfig wires the runner's store, adapters, and per-service tuning.
type RunnerConfig struct {
	Store      *scenestore.Store
	Video      VideoGenerator
	Speech     SpeechSynthesizer
	LipSync    LipSyncer
	Transcoder Transcoder
	Downloader Downloader
	Logger     *slog.Logger

	VideoPollInterval   time.Duration
	VideoPollTimeout    time.Duration
	LipSyncPollInterval time.Duration
	LipSyncPollTimeout  time.Duration

	DurationSeconds int
	AspectRatio     string
	DefaultVoiceID  string
}

// Runner executes the scene state machine against configured adapters.
type Runner struct {
	cfg    RunnerConfig
	logger *slog.Logger
}

// NewRunner validates the always-required collaborators. The speech and
// lip-sync adapters may be nil when every scene is dialogue-free; their
// absence surfaces as a configuration error only if a scene needs them.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.Store == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "new", "scene store required", nil)
	}
	if cfg.Video == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "new", "video generator required", nil)
	}
	if cfg.Transcoder == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "new", "transcoder required", nil)
	}
	if cfg.Downloader == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "new", "downloader required", nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{cfg: cfg, logger: logger}, nil
}

// Process runs one scene through the full state machine and returns its
// artifact manifest. Any step failure marks the scene failed and returns the
// underlying error annotated with the scene id.
func (r *Runner) Process(ctx context.Context, scene scenedef.Scene, opts Options) (Manifest, error) {
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	id := scene.SceneID

	ctx = services.WithSceneID(ctx, id)
	ctx = services.WithRequestID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, r.logger)

	scenePath, err := r.cfg.Store.CreateScene(id)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", id, err)
	}
	artifactDir := scenePath
	if dir := strings.TrimSpace(scene.OutputDir); dir != "" {
		artifactDir = dir
		if err := fileutil.EnsureDir(artifactDir); err != nil {
			return nil, fmt.Errorf("scene %s: %w", id,
				services.Wrap(services.ErrStore, "pipeline", "prepare output dir", artifactDir, err))
		}
	}

	manifest := Manifest{
		ManifestSceneID:   id,
		ManifestScenePath: scenePath,
	}

	fail := func(err error) (Manifest, error) {
		if storeErr := r.cfg.Store.UpdateStatus(id, scenestore.StatusFailed); storeErr != nil {
			logger.Warn("failed to record failure status", logging.Error(storeErr))
		}
		logger.Error("scene failed",
			logging.String(logging.FieldEventType, "scene_failed"),
			logging.Error(err),
		)
		return nil, fmt.Errorf("scene %s: %w", id, err)
	}

	// Terminal-step store errors still mark the scene failed, so finish
	// routes through fail like every other step.
	finish := func(finalPath, variant string) (Manifest, error) {
		if err := r.cfg.Store.SaveArtifact(id, scenestore.ArtifactFinalProRes, finalPath, nil); err != nil {
			return fail(err)
		}
		if err := r.cfg.Store.UpdateStatus(id, scenestore.StatusCompleted); err != nil {
			return fail(err)
		}
		manifest[scenestore.ArtifactFinalProRes] = finalPath
		logger.Info("scene completed",
			logging.String(logging.FieldEventType, "scene_complete"),
			logging.String("variant", variant),
			logging.String("final_path", finalPath),
		)
		return manifest, nil
	}

	// Stage 1: video generation.
	stageCtx, err := r.enterStage(ctx, id, scenestore.StatusGeneratingVideo)
	if err != nil {
		return fail(err)
	}
	jobID, err := r.cfg.Video.Submit(stageCtx, services.GenerationRequest{
		Prompt:          scene.Prompt.Compile(),
		DurationSeconds: r.cfg.DurationSeconds,
		AspectRatio:     r.cfg.AspectRatio,
	})
	if err != nil {
		return fail(err)
	}
	videoStatus, err := polling.Wait(stageCtx, polling.Options{
		Interval: r.cfg.VideoPollInterval,
		Timeout:  r.cfg.VideoPollTimeout,
		Stage:    "generate_video",
	}, jobCheck(r.cfg.Video.Poll, jobID))
	if err != nil {
		return fail(err)
	}

	// Stage 2: download and mezzanine transcode.
	stageCtx, err = r.enterStage(ctx, id, scenestore.StatusDownloading)
	if err != nil {
		return fail(err)
	}
	rawPath := filepath.Join(artifactDir, id+"_veo_raw.mp4")
	if err := r.cfg.Video.Fetch(stageCtx, videoStatus.Locator, rawPath); err != nil {
		return fail(err)
	}
	if err := r.cfg.Store.SaveArtifact(id, scenestore.ArtifactRawVideo, rawPath,
		map[string]any{"source": videoStatus.Locator}); err != nil {
		return fail(err)
	}
	manifest[scenestore.ArtifactRawVideo] = rawPath

	proresPath := filepath.Join(artifactDir, id+"_veo_prores.mov")
	if err := r.cfg.Transcoder.TranscodeToMezzanine(stageCtx, rawPath, proresPath); err != nil {
		return fail(err)
	}
	if err := r.cfg.Store.SaveArtifact(id, scenestore.ArtifactProResVideo, proresPath, nil); err != nil {
		return fail(err)
	}
	manifest[scenestore.ArtifactProResVideo] = proresPath

	if !scene.Prompt.HasDialogue() {
		return finish(proresPath, "silent scene")
	}

	// Stage 3: dialogue synthesis.
	stageCtx, err = r.enterStage(ctx, id, scenestore.StatusGeneratingAudio)
	if err != nil {
		return fail(err)
	}
	if r.cfg.Speech == nil {
		return fail(services.Wrap(services.ErrConfiguration, "pipeline", "synthesize",
			"speech synthesizer not configured", nil))
	}
	voiceID := strings.TrimSpace(opts.VoiceID)
	if voiceID == "" {
		voiceID = r.cfg.DefaultVoiceID
	}
	audioPath := filepath.Join(artifactDir, id+"_dialogue.mp3")
	if err := r.cfg.Speech.Synthesize(stageCtx, services.SpeechRequest{
		Text:       scene.Prompt.Dialogue(),
		VoiceID:    voiceID,
		OutputPath: audioPath,
	}); err != nil {
		return fail(err)
	}
	if err := r.cfg.Store.SaveArtifact(id, scenestore.ArtifactAudio, audioPath,
		map[string]any{"voice_id": voiceID}); err != nil {
		return fail(err)
	}
	manifest[scenestore.ArtifactAudio] = audioPath

	if opts.SkipLipSync {
		return finish(proresPath, "lip-sync skipped")
	}

	// Stage 4: lip-sync.
	stageCtx, err = r.enterStage(ctx, id, scenestore.StatusLipSyncing)
	if err != nil {
		return fail(err)
	}
	if r.cfg.LipSync == nil {
		return fail(services.Wrap(services.ErrConfiguration, "pipeline", "lip-sync",
			"lip-sync adapter not configured", nil))
	}
	syncJobID, err := r.cfg.LipSync.Submit(stageCtx, rawPath, audioPath)
	if err != nil {
		return fail(err)
	}
	syncStatus, err := polling.Wait(stageCtx, polling.Options{
		Interval: r.cfg.LipSyncPollInterval,
		Timeout:  r.cfg.LipSyncPollTimeout,
		Stage:    "lip_sync",
	}, jobCheck(r.cfg.LipSync.Poll, syncJobID))
	if err != nil {
		return fail(err)
	}
	syncedPath := filepath.Join(artifactDir, id+"_synced.mp4")
	if err := r.cfg.Downloader.Download(stageCtx, syncStatus.Locator, syncedPath); err != nil {
		return fail(err)
	}
	if err := r.cfg.Store.SaveArtifact(id, scenestore.ArtifactSyncedVideo, syncedPath,
		map[string]any{"source": syncStatus.Locator}); err != nil {
		return fail(err)
	}
	manifest[scenestore.ArtifactSyncedVideo] = syncedPath

	// Stage 5: final mezzanine transcode.
	finalPath := filepath.Join(artifactDir, id+"_final_prores.mov")
	if err := r.cfg.Transcoder.TranscodeToMezzanine(stageCtx, syncedPath, finalPath); err != nil {
		return fail(err)
	}
	return finish(finalPath, "lip-synced")
}

// enterStage persists the status transition before its step runs, logs the
// stage start, and returns a stage-tagged context for the step's calls.
func (r *Runner) enterStage(ctx context.Context, id string, status scenestore.Status) (context.Context, error) {
	if err := r.cfg.Store.UpdateStatus(id, status); err != nil {
		return ctx, err
	}
	ctx = services.WithStage(ctx, string(status))
	logging.WithContext(ctx, r.logger).Info("stage started",
		logging.String(logging.FieldEventType, "stage_start"),
	)
	return ctx, nil
}

// jobCheck adapts an adapter's Poll method to the poller's check contract.
func jobCheck(poll func(context.Context, string) (services.JobStatus, error), jobID string) polling.Check[services.JobStatus] {
	return func(ctx context.Context) (polling.Outcome[services.JobStatus], error) {
		status, err := poll(ctx, jobID)
		if err != nil {
			return polling.Outcome[services.JobStatus]{}, err
		}
		switch status.State {
		case services.JobStateSucceeded:
			return polling.Complete(status), nil
		case services.JobStateFailed:
			return polling.Failed[services.JobStatus](status.Reason), nil
		default:
			return polling.Pending[services.JobStatus](), nil
		}
	}
}
