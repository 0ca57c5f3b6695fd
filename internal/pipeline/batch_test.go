package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sceneforge/internal/pipeline"
	"sceneforge/internal/scenedef"
	"sceneforge/internal/scenestore"
)

func TestRunAllIsolatesFailures(t *testing.T) {
	f := newFixture(t)
	scenes := []scenedef.Scene{
		silentScene("batch-1"),
		{SceneID: "batch-2"}, // invalid: no description
		silentScene("batch-3"),
	}

	entries := f.runner.RunAll(context.Background(), scenes, pipeline.Options{})
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{"batch-1", "batch-2", "batch-3"} {
		if entries[i].SceneID != want {
			t.Fatalf("entry %d scene id %q, want %q", i, entries[i].SceneID, want)
		}
	}

	if entries[0].Err != nil || entries[0].Manifest == nil {
		t.Fatalf("entry 0 should succeed: %+v", entries[0])
	}
	if entries[1].Err == nil {
		t.Fatalf("entry 1 should fail: %+v", entries[1])
	}
	if entries[2].Err != nil || entries[2].Manifest == nil {
		t.Fatalf("entry 2 should succeed despite entry 1 failing: %+v", entries[2])
	}

	if record := f.store.Record("batch-3"); record.Status != scenestore.StatusCompleted {
		t.Fatalf("expected batch-3 completed, got %s", record.Status)
	}
}

func TestRunAllCapturesAdapterErrors(t *testing.T) {
	f := newFixture(t)
	f.video.submitErr = errors.New("quota exhausted")

	entries := f.runner.RunAll(context.Background(), []scenedef.Scene{silentScene("batch-4")}, pipeline.Options{})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Err == nil || !strings.Contains(entries[0].Err.Error(), "batch-4") {
		t.Fatalf("expected error naming the scene, got %v", entries[0].Err)
	}
}

func TestRunAllEmptyInput(t *testing.T) {
	f := newFixture(t)
	entries := f.runner.RunAll(context.Background(), nil, pipeline.Options{})
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
