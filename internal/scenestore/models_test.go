package scenestore_test

import (
	"testing"

	"sceneforge/internal/scenestore"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		input string
		want  scenestore.Status
		ok    bool
	}{
		{"created", scenestore.StatusCreated, true},
		{"  LIP_SYNCING ", scenestore.StatusLipSyncing, true},
		{"completed", scenestore.StatusCompleted, true},
		{"bogus", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := scenestore.ParseStatus(tc.input)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("ParseStatus(%q) = %q, %v; want %q, %v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestStatusClassification(t *testing.T) {
	if !scenestore.StatusCompleted.IsTerminal() || !scenestore.StatusFailed.IsTerminal() {
		t.Fatal("expected completed and failed to be terminal")
	}
	if scenestore.StatusGeneratingVideo.IsTerminal() {
		t.Fatal("generating_video must not be terminal")
	}
	for _, s := range []scenestore.Status{
		scenestore.StatusGeneratingVideo,
		scenestore.StatusDownloading,
		scenestore.StatusGeneratingAudio,
		scenestore.StatusLipSyncing,
	} {
		if !s.IsProcessing() {
			t.Fatalf("expected %s to be processing", s)
		}
	}
	if scenestore.StatusCreated.IsProcessing() {
		t.Fatal("created must not be processing")
	}
}

func TestRecordArtifactKeysSorted(t *testing.T) {
	record := scenestore.Record{Artifacts: map[string]scenestore.Artifact{
		"synced_video": {Path: "c"},
		"audio":        {Path: "a"},
		"raw_video":    {Path: "b"},
	}}
	keys := record.ArtifactKeys()
	want := []string{"audio", "raw_video", "synced_video"}
	if len(keys) != len(want) {
		t.Fatalf("unexpected keys: %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("unexpected keys: %v", keys)
		}
	}
}
