package scenestore

import (
	"sort"
	"strings"
	"time"
)

// Status represents the lifecycle of a scene.
type Status string

const (
	StatusCreated         Status = "created"
	StatusGeneratingVideo Status = "generating_video"
	StatusDownloading     Status = "downloading"
	StatusGeneratingAudio Status = "generating_audio"
	StatusLipSyncing      Status = "lip_syncing"
	StatusCompleted       Status = "completed"
	StatusFailed          Status = "failed"
	// StatusUnknown is reported when a scene's metadata record is missing or
	// cannot be parsed. It is never persisted.
	StatusUnknown Status = "unknown"
)

var allStatuses = []Status{
	StatusCreated,
	StatusGeneratingVideo,
	StatusDownloading,
	StatusGeneratingAudio,
	StatusLipSyncing,
	StatusCompleted,
	StatusFailed,
	StatusUnknown,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

var processingStatuses = map[Status]struct{}{
	StatusGeneratingVideo: {},
	StatusDownloading:     {},
	StatusGeneratingAudio: {},
	StatusLipSyncing:      {},
}

// Well-known artifact keys written by the pipeline.
const (
	ArtifactRawVideo    = "raw_video"
	ArtifactProResVideo = "prores_video"
	ArtifactAudio       = "audio"
	ArtifactSyncedVideo = "synced_video"
	ArtifactFinalProRes = "final_prores"
)

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether a status ends the pipeline for a scene.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// IsProcessing reports whether the status reflects an in-flight pipeline step.
func (s Status) IsProcessing() bool {
	_, ok := processingStatuses[s]
	return ok
}

// Artifact references a file produced by one pipeline step.
type Artifact struct {
	Path     string         `json:"path"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Record is the persisted metadata for one scene.
type Record struct {
	SceneID   string              `json:"scene_id"`
	CreatedAt time.Time           `json:"created_at"`
	Status    Status              `json:"status"`
	Artifacts map[string]Artifact `json:"artifacts"`
}

// ArtifactKeys returns the sorted artifact key set of the record.
func (r Record) ArtifactKeys() []string {
	keys := make([]string, 0, len(r.Artifacts))
	for key := range r.Artifacts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SceneSummary is the per-scene slice of a project snapshot.
type SceneSummary struct {
	Status       Status
	ArtifactKeys []string
}

// ProjectSnapshot aggregates scene state for status reporting.
type ProjectSnapshot struct {
	Root      string
	ScenesDir string
	Scenes    map[string]SceneSummary
}
