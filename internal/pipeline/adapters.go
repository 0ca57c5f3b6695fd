package pipeline

import (
	"context"

	"sceneforge/internal/services"
)

// VideoGenerator drives an asynchronous text-to-video service.
type VideoGenerator interface {
	Submit(ctx context.Context, req services.GenerationRequest) (string, error)
	Poll(ctx context.Context, jobID string) (services.JobStatus, error)
	Fetch(ctx context.Context, locator, localPath string) error
}

// SpeechSynthesizer renders dialogue text to an audio file synchronously.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, req services.SpeechRequest) error
}

// LipSyncer drives an asynchronous lip-sync service. The succeeded locator
// is a publicly fetchable URL handled by the Downloader.
type LipSyncer interface {
	Submit(ctx context.Context, videoPath, audioPath string) (string, error)
	Poll(ctx context.Context, jobID string) (services.JobStatus, error)
}

// Transcoder converts a video into the mezzanine delivery format.
type Transcoder interface {
	TranscodeToMezzanine(ctx context.Context, input, output string) error
}

// Downloader streams a remote artifact to a local path.
type Downloader interface {
	Download(ctx context.Context, url, destPath string) error
}
