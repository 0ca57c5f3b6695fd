package pipeline

import (
	"context"

	"sceneforge/internal/logging"
	"sceneforge/internal/scenedef"
)

// BatchEntry is one scene's outcome within a batch run. Exactly one of
// Manifest and Err is set.
type BatchEntry struct {
	SceneID  string
	Manifest Manifest
	Err      error
}

// RunAll processes scenes sequentially in input order. A scene's failure is
// captured in its entry and the batch continues; the result always has the
// same length and order as the input.
func (r *Runner) RunAll(ctx context.Context, scenes []scenedef.Scene, opts Options) []BatchEntry {
	entries := make([]BatchEntry, 0, len(scenes))
	for _, scene := range scenes {
		manifest, err := r.Process(ctx, scene, opts)
		entry := BatchEntry{SceneID: scene.SceneID, Manifest: manifest, Err: err}
		if err != nil {
			r.logger.Warn("batch scene failed",
				logging.String(logging.FieldSceneID, scene.SceneID),
				logging.Error(err),
			)
		}
		entries = append(entries, entry)
	}
	return entries
}
