package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks failures of the remote or local tool invocation
	// itself (auth, network, bad input, non-zero exit).
	ErrExternalTool = errors.New("external tool error")
	// ErrJobFailed marks a terminal failure status reported for a submitted
	// asynchronous job. The provider's reason string is preserved in the
	// wrapped message.
	ErrJobFailed = errors.New("job failed")
	// ErrTimeout marks a polling wait that exhausted its wall-clock budget.
	ErrTimeout = errors.New("timeout")
	// ErrStore marks scene metadata read/write failures.
	ErrStore = errors.New("store error")
	// ErrConfiguration marks missing credentials or identifiers detected at
	// adapter construction time.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks rejected caller input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks lookups that produced no result.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
