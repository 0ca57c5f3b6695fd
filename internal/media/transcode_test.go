package media_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sceneforge/internal/media"
	"sceneforge/internal/services"
)

type recordingExecutor struct {
	binary string
	args   []string
	err    error
}

func (r *recordingExecutor) Run(_ context.Context, binary string, args []string) error {
	r.binary = binary
	r.args = args
	return r.err
}

func TestNewTranscoderValidatesInputs(t *testing.T) {
	if _, err := media.NewTranscoder("", 2, 600); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty binary, got %v", err)
	}
	if _, err := media.NewTranscoder("ffmpeg", 7, 600); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for bad profile, got %v", err)
	}
}

func TestTranscodeToMezzanineBuildsProResCommand(t *testing.T) {
	exec := &recordingExecutor{}
	transcoder, err := media.NewTranscoder("ffmpeg", 3, 600, media.WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewTranscoder: %v", err)
	}

	output := filepath.Join(t.TempDir(), "nested", "scene_final.mov")
	if err := transcoder.TranscodeToMezzanine(context.Background(), "/tmp/raw.mp4", output); err != nil {
		t.Fatalf("TranscodeToMezzanine: %v", err)
	}
	if exec.binary != "ffmpeg" {
		t.Fatalf("unexpected binary %q", exec.binary)
	}
	want := []string{
		"-y",
		"-i", "/tmp/raw.mp4",
		"-c:v", "prores_ks",
		"-profile:v", "3",
		"-pix_fmt", "yuv422p10le",
		"-c:a", "pcm_s16le",
		output,
	}
	if len(exec.args) != len(want) {
		t.Fatalf("unexpected args %v", exec.args)
	}
	for i := range want {
		if exec.args[i] != want[i] {
			t.Fatalf("arg %d = %q, want %q", i, exec.args[i], want[i])
		}
	}
	if _, err := os.Stat(filepath.Dir(output)); err != nil {
		t.Fatalf("expected output directory to exist: %v", err)
	}
}

func TestTranscodeToMezzanineWrapsExecutorFailure(t *testing.T) {
	exec := &recordingExecutor{err: errors.New("ffmpeg exploded")}
	transcoder, err := media.NewTranscoder("ffmpeg", 2, 600, media.WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewTranscoder: %v", err)
	}

	err = transcoder.TranscodeToMezzanine(context.Background(), "/tmp/raw.mp4", filepath.Join(t.TempDir(), "out.mov"))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestTranscodeToMezzanineRejectsEmptyPaths(t *testing.T) {
	transcoder, err := media.NewTranscoder("ffmpeg", 2, 600, media.WithExecutor(&recordingExecutor{}))
	if err != nil {
		t.Fatalf("NewTranscoder: %v", err)
	}
	if err := transcoder.TranscodeToMezzanine(context.Background(), "", "out.mov"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
