package scenestore_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"sceneforge/internal/scenestore"
	"sceneforge/internal/services"
	"sceneforge/internal/testsupport"
)

func TestCreateSceneInitializesRecord(t *testing.T) {
	store := testsupport.MustOpenStore(t)

	scenePath, err := store.CreateScene("scene_01")
	if err != nil {
		t.Fatalf("CreateScene failed: %v", err)
	}
	if scenePath != store.ScenePath("scene_01") {
		t.Fatalf("unexpected scene path: %s", scenePath)
	}
	if _, err := os.Stat(filepath.Join(scenePath, "metadata.json")); err != nil {
		t.Fatalf("expected metadata file: %v", err)
	}

	record := store.Record("scene_01")
	if record.Status != scenestore.StatusCreated {
		t.Fatalf("expected created status, got %s", record.Status)
	}
	if len(record.Artifacts) != 0 {
		t.Fatalf("expected empty artifact map, got %#v", record.Artifacts)
	}
	if record.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestCreateSceneIdempotent(t *testing.T) {
	store := testsupport.MustOpenStore(t)

	if _, err := store.CreateScene("scene_01"); err != nil {
		t.Fatalf("CreateScene failed: %v", err)
	}
	if err := store.UpdateStatus("scene_01", scenestore.StatusLipSyncing); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	if _, err := store.CreateScene("scene_01"); err != nil {
		t.Fatalf("second CreateScene failed: %v", err)
	}
	if record := store.Record("scene_01"); record.Status != scenestore.StatusLipSyncing {
		t.Fatalf("expected advanced status preserved, got %s", record.Status)
	}
}

func TestCreateSceneRejectsPathSeparators(t *testing.T) {
	store := testsupport.MustOpenStore(t)

	for _, id := range []string{"", "..", "a/b", "../escape"} {
		if _, err := store.CreateScene(id); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("expected validation error for %q, got %v", id, err)
		}
	}
}

func TestSaveArtifactUpserts(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	if _, err := store.CreateScene("scene_01"); err != nil {
		t.Fatalf("CreateScene failed: %v", err)
	}

	if err := store.SaveArtifact("scene_01", scenestore.ArtifactRawVideo, "/tmp/a.mp4", nil); err != nil {
		t.Fatalf("SaveArtifact failed: %v", err)
	}
	if err := store.SaveArtifact("scene_01", scenestore.ArtifactRawVideo, "/tmp/b.mp4", map[string]any{"source": "retry"}); err != nil {
		t.Fatalf("SaveArtifact upsert failed: %v", err)
	}

	path, ok := store.ArtifactPath("scene_01", scenestore.ArtifactRawVideo)
	if !ok || path != "/tmp/b.mp4" {
		t.Fatalf("expected upserted path, got %q %v", path, ok)
	}
	if _, ok := store.ArtifactPath("scene_01", "missing"); ok {
		t.Fatal("expected absent artifact to report false")
	}
}

func TestAnnotateArtifactMergesMetadata(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	if _, err := store.CreateScene("scene_01"); err != nil {
		t.Fatalf("CreateScene failed: %v", err)
	}
	if err := store.SaveArtifact("scene_01", scenestore.ArtifactFinalProRes, "/tmp/a.mov",
		map[string]any{"variant": "lip-synced"}); err != nil {
		t.Fatalf("SaveArtifact failed: %v", err)
	}

	if err := store.AnnotateArtifact("scene_01", scenestore.ArtifactFinalProRes,
		map[string]any{"youtube_video_id": "abc123"}); err != nil {
		t.Fatalf("AnnotateArtifact failed: %v", err)
	}

	artifact := store.Record("scene_01").Artifacts[scenestore.ArtifactFinalProRes]
	if artifact.Path != "/tmp/a.mov" {
		t.Fatalf("annotation must not change the path, got %q", artifact.Path)
	}
	if artifact.Metadata["youtube_video_id"] != "abc123" {
		t.Fatalf("expected annotation persisted, got %#v", artifact.Metadata)
	}
	if artifact.Metadata["variant"] != "lip-synced" {
		t.Fatalf("expected earlier metadata preserved, got %#v", artifact.Metadata)
	}
}

func TestAnnotateArtifactRequiresExistingArtifact(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	if _, err := store.CreateScene("scene_01"); err != nil {
		t.Fatalf("CreateScene failed: %v", err)
	}

	err := store.AnnotateArtifact("scene_01", scenestore.ArtifactFinalProRes,
		map[string]any{"youtube_video_id": "abc123"})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRecordDegradesOnCorruptMetadata(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	scenePath, err := store.CreateScene("scene_01")
	if err != nil {
		t.Fatalf("CreateScene failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(scenePath, "metadata.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt metadata: %v", err)
	}

	record := store.Record("scene_01")
	if record.Status != scenestore.StatusUnknown {
		t.Fatalf("expected unknown status, got %s", record.Status)
	}
	if len(record.Artifacts) != 0 {
		t.Fatalf("expected empty artifacts, got %#v", record.Artifacts)
	}
}

func TestRecordMissingScene(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	record := store.Record("never_created")
	if record.Status != scenestore.StatusUnknown {
		t.Fatalf("expected unknown status, got %s", record.Status)
	}
}

func TestListScenesSorted(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	for _, id := range []string{"scene_03", "scene_01", "scene_02"} {
		if _, err := store.CreateScene(id); err != nil {
			t.Fatalf("CreateScene(%s) failed: %v", id, err)
		}
	}

	ids, err := store.ListScenes()
	if err != nil {
		t.Fatalf("ListScenes failed: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"scene_01", "scene_02", "scene_03"}) {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestListScenesUsesDirectoryPresence(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	// A directory without metadata still counts as a scene.
	if err := os.MkdirAll(filepath.Join(store.ScenesDir(), "orphan"), 0o755); err != nil {
		t.Fatalf("mkdir orphan: %v", err)
	}

	ids, err := store.ListScenes()
	if err != nil {
		t.Fatalf("ListScenes failed: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"orphan"}) {
		t.Fatalf("unexpected ids: %v", ids)
	}
	if record := store.Record("orphan"); record.Status != scenestore.StatusUnknown {
		t.Fatalf("expected unknown status for orphan, got %s", record.Status)
	}
}

func TestSnapshotProjectsStatusAndArtifacts(t *testing.T) {
	store := testsupport.MustOpenStore(t)

	if _, err := store.CreateScene("a"); err != nil {
		t.Fatalf("CreateScene failed: %v", err)
	}
	if err := store.UpdateStatus("a", scenestore.StatusCompleted); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if err := store.SaveArtifact("a", scenestore.ArtifactFinalProRes, "/tmp/a.mov", nil); err != nil {
		t.Fatalf("SaveArtifact failed: %v", err)
	}
	if err := store.SaveArtifact("a", scenestore.ArtifactRawVideo, "/tmp/a.mp4", nil); err != nil {
		t.Fatalf("SaveArtifact failed: %v", err)
	}

	if _, err := store.CreateScene("b"); err != nil {
		t.Fatalf("CreateScene failed: %v", err)
	}
	if err := store.UpdateStatus("b", scenestore.StatusFailed); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	snapshot, err := store.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snapshot.Scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(snapshot.Scenes))
	}
	if snapshot.Scenes["a"].Status != scenestore.StatusCompleted {
		t.Fatalf("unexpected status for a: %s", snapshot.Scenes["a"].Status)
	}
	if !reflect.DeepEqual(snapshot.Scenes["a"].ArtifactKeys, []string{"final_prores", "raw_video"}) {
		t.Fatalf("unexpected artifact keys: %v", snapshot.Scenes["a"].ArtifactKeys)
	}
	if snapshot.Scenes["b"].Status != scenestore.StatusFailed {
		t.Fatalf("unexpected status for b: %s", snapshot.Scenes["b"].Status)
	}
	if len(snapshot.Scenes["b"].ArtifactKeys) != 0 {
		t.Fatalf("expected no artifacts for b, got %v", snapshot.Scenes["b"].ArtifactKeys)
	}
}
