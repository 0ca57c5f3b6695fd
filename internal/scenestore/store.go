package scenestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"sceneforge/internal/fileutil"
	"sceneforge/internal/logging"
	"sceneforge/internal/services"
)

const metadataFileName = "metadata.json"

// Store manages scene directories and metadata records under a project root.
type Store struct {
	root      string
	scenesDir string
	logger    *slog.Logger
}

// Open prepares a store rooted at projectRoot, creating the scenes directory
// if needed.
func Open(projectRoot string, logger *slog.Logger) (*Store, error) {
	root := strings.TrimSpace(projectRoot)
	if root == "" {
		return nil, services.Wrap(services.ErrValidation, "store", "open", "project root is required", nil)
	}
	scenesDir := filepath.Join(root, "scenes")
	if err := fileutil.EnsureDir(scenesDir); err != nil {
		return nil, services.Wrap(services.ErrStore, "store", "open", "create scenes directory", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{
		root:      root,
		scenesDir: scenesDir,
		logger:    logging.NewComponentLogger(logger, "scenestore"),
	}, nil
}

// Root returns the project root directory.
func (s *Store) Root() string { return s.root }

// ScenesDir returns the directory holding per-scene subdirectories.
func (s *Store) ScenesDir() string { return s.scenesDir }

// ScenePath returns the directory owned by the given scene.
func (s *Store) ScenePath(sceneID string) string {
	return filepath.Join(s.scenesDir, sceneID)
}

// ValidateSceneID rejects identifiers that would escape the scenes directory.
func ValidateSceneID(sceneID string) error {
	id := strings.TrimSpace(sceneID)
	if id == "" {
		return services.Wrap(services.ErrValidation, "store", "scene id", "identifier is required", nil)
	}
	if id != filepath.Base(id) || id == "." || id == ".." {
		return services.Wrap(services.ErrValidation, "store", "scene id",
			fmt.Sprintf("identifier %q must not contain path separators", sceneID), nil)
	}
	return nil
}

// CreateScene idempotently ensures the scene directory and metadata record
// exist and returns the scene directory path. An existing record is left
// untouched, so re-running a scene never resets an advanced status.
func (s *Store) CreateScene(sceneID string) (string, error) {
	if err := ValidateSceneID(sceneID); err != nil {
		return "", err
	}
	scenePath := s.ScenePath(sceneID)
	if err := fileutil.EnsureDir(scenePath); err != nil {
		return "", services.Wrap(services.ErrStore, "store", "create scene", sceneID, err)
	}

	metadataPath := filepath.Join(scenePath, metadataFileName)
	if _, err := os.Stat(metadataPath); errors.Is(err, fs.ErrNotExist) {
		record := Record{
			SceneID:   sceneID,
			CreatedAt: time.Now().UTC(),
			Status:    StatusCreated,
			Artifacts: map[string]Artifact{},
		}
		if err := s.writeRecord(sceneID, record); err != nil {
			return "", err
		}
		s.logger.Info("scene created", logging.String(logging.FieldSceneID, sceneID), logging.String("path", scenePath))
	} else if err != nil {
		return "", services.Wrap(services.ErrStore, "store", "create scene", sceneID, err)
	}

	return scenePath, nil
}

// UpdateStatus overwrites the persisted status for a scene. Write failures
// propagate to the caller and are not retried.
func (s *Store) UpdateStatus(sceneID string, status Status) error {
	if err := ValidateSceneID(sceneID); err != nil {
		return err
	}
	record := s.Record(sceneID)
	record.Status = status
	if err := s.writeRecord(sceneID, record); err != nil {
		return err
	}
	s.logger.Info("status updated",
		logging.String(logging.FieldSceneID, sceneID),
		logging.String("status", string(status)))
	return nil
}

// SaveArtifact upserts the named artifact reference and persists immediately,
// so the record reflects reality after each pipeline step even on crash.
func (s *Store) SaveArtifact(sceneID, key, path string, metadata map[string]any) error {
	if err := ValidateSceneID(sceneID); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return services.Wrap(services.ErrValidation, "store", "save artifact", "artifact key is required", nil)
	}
	record := s.Record(sceneID)
	if record.Artifacts == nil {
		record.Artifacts = map[string]Artifact{}
	}
	record.Artifacts[key] = Artifact{Path: path, Metadata: metadata}
	if err := s.writeRecord(sceneID, record); err != nil {
		return err
	}
	s.logger.Info("artifact saved",
		logging.String(logging.FieldSceneID, sceneID),
		logging.String("artifact", key),
		logging.String("path", path))
	return nil
}

// AnnotateArtifact merges fields into an existing artifact's metadata without
// touching its path. Publishing steps use this to record remote identifiers
// after the fact.
func (s *Store) AnnotateArtifact(sceneID, key string, fields map[string]any) error {
	if err := ValidateSceneID(sceneID); err != nil {
		return err
	}
	record := s.Record(sceneID)
	artifact, ok := record.Artifacts[key]
	if !ok {
		return services.Wrap(services.ErrNotFound, "store", "annotate artifact",
			fmt.Sprintf("scene %s has no %s artifact", sceneID, key), nil)
	}
	if artifact.Metadata == nil {
		artifact.Metadata = map[string]any{}
	}
	for name, value := range fields {
		artifact.Metadata[name] = value
	}
	record.Artifacts[key] = artifact
	if err := s.writeRecord(sceneID, record); err != nil {
		return err
	}
	s.logger.Info("artifact annotated",
		logging.String(logging.FieldSceneID, sceneID),
		logging.String("artifact", key))
	return nil
}

// ArtifactPath returns the stored path for the named artifact, if present.
func (s *Store) ArtifactPath(sceneID, key string) (string, bool) {
	record := s.Record(sceneID)
	artifact, ok := record.Artifacts[key]
	if !ok {
		return "", false
	}
	return artifact.Path, true
}

// Record loads a scene's metadata. A missing or unparseable record degrades
// to StatusUnknown with an empty artifact map; the parse failure is logged,
// never raised.
func (s *Store) Record(sceneID string) Record {
	fallback := Record{
		SceneID:   sceneID,
		Status:    StatusUnknown,
		Artifacts: map[string]Artifact{},
	}

	data, err := os.ReadFile(filepath.Join(s.ScenePath(sceneID), metadataFileName))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("metadata unreadable",
				logging.String(logging.FieldSceneID, sceneID),
				logging.Error(err))
		}
		return fallback
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		s.logger.Warn("metadata corrupt",
			logging.String(logging.FieldSceneID, sceneID),
			logging.Error(err))
		return fallback
	}
	if record.SceneID == "" {
		record.SceneID = sceneID
	}
	if record.Status == "" {
		record.Status = StatusUnknown
	}
	if record.Artifacts == nil {
		record.Artifacts = map[string]Artifact{}
	}
	return record
}

// ListScenes returns the lexicographically sorted scene ids present under the
// scenes directory, based on directory presence rather than metadata validity.
func (s *Store) ListScenes() ([]string, error) {
	entries, err := os.ReadDir(s.scenesDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrStore, "store", "list scenes", "", err)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Snapshot aggregates every scene's status and artifact key set for status
// reporting.
func (s *Store) Snapshot() (ProjectSnapshot, error) {
	snapshot := ProjectSnapshot{
		Root:      s.root,
		ScenesDir: s.scenesDir,
		Scenes:    map[string]SceneSummary{},
	}
	ids, err := s.ListScenes()
	if err != nil {
		return snapshot, err
	}
	for _, id := range ids {
		record := s.Record(id)
		snapshot.Scenes[id] = SceneSummary{
			Status:       record.Status,
			ArtifactKeys: record.ArtifactKeys(),
		}
	}
	return snapshot, nil
}

func (s *Store) writeRecord(sceneID string, record Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrStore, "store", "encode metadata", sceneID, err)
	}
	path := filepath.Join(s.ScenePath(sceneID), metadataFileName)
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return services.Wrap(services.ErrStore, "store", "write metadata", sceneID, err)
	}
	return nil
}
