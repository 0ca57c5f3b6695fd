package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"sceneforge/internal/fileutil"
	"sceneforge/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := lastLines(stderr.String(), 5)
		if detail != "" {
			return fmt.Errorf("%w: %s", err, detail)
		}
		return err
	}
	return nil
}

// Option configures the transcoder.
type Option func(*Transcoder)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(t *Transcoder) {
		if exec != nil {
			t.exec = exec
		}
	}
}

// Transcoder converts videos to the mezzanine ProRes format via ffmpeg.
type Transcoder struct {
	binary  string
	profile int
	timeout time.Duration
	exec    Executor
}

// NewTranscoder constructs an ffmpeg transcoder. Profile selects the ProRes
// variant: 0 Proxy, 1 LT, 2 422, 3 422 HQ.
func NewTranscoder(binary string, profile, timeoutSeconds int, opts ...Option) (*Transcoder, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, services.Wrap(services.ErrConfiguration, "transcode", "new", "ffmpeg binary required", nil)
	}
	if profile < 0 || profile > 3 {
		return nil, services.Wrap(services.ErrConfiguration, "transcode", "new",
			fmt.Sprintf("prores profile %d out of range", profile), nil)
	}
	t := &Transcoder{
		binary:  binary,
		profile: profile,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// TranscodeToMezzanine converts input to a ProRes file at output, creating
// parent directories as needed.
func (t *Transcoder) TranscodeToMezzanine(ctx context.Context, input, output string) error {
	if strings.TrimSpace(input) == "" || strings.TrimSpace(output) == "" {
		return services.Wrap(services.ErrValidation, "transcode", "run", "input and output paths required", nil)
	}
	if err := fileutil.EnsureParentDir(output); err != nil {
		return services.Wrap(services.ErrExternalTool, "transcode", "prepare output", output, err)
	}

	runCtx := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	args := []string{
		"-y",
		"-i", input,
		"-c:v", "prores_ks",
		"-profile:v", strconv.Itoa(t.profile),
		"-pix_fmt", "yuv422p10le",
		"-c:a", "pcm_s16le",
		output,
	}
	if err := t.exec.Run(runCtx, t.binary, args); err != nil {
		return services.Wrap(services.ErrExternalTool, "transcode", "ffmpeg", input, err)
	}
	return nil
}

func lastLines(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
