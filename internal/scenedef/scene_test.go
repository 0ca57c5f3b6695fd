package scenedef_test

import (
	"errors"
	"path/filepath"
	"testing"

	"sceneforge/internal/scenedef"
	"sceneforge/internal/services"
	"sceneforge/internal/testsupport"
)

func TestParseScenesBatchWrapper(t *testing.T) {
	data := []byte(`{
		"scenes": [
			{"scene_id": "scene_01", "prompt": {"cinematic_description": "Dawn over the bay"}},
			{"scene_id": "scene_02", "prompt": {"cinematic_description": "Night market", "dialogue_text": "Fresh fish!"}}
		]
	}`)
	scenes, err := scenedef.ParseScenes(data)
	if err != nil {
		t.Fatalf("ParseScenes failed: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].SceneID != "scene_01" || scenes[1].Prompt.DialogueText != "Fresh fish!" {
		t.Fatalf("unexpected scenes: %+v", scenes)
	}
}

func TestParseScenesSingleObject(t *testing.T) {
	data := []byte(`{"scene_id": "solo", "prompt": {"cinematic_description": "A single take"}}`)
	scenes, err := scenedef.ParseScenes(data)
	if err != nil {
		t.Fatalf("ParseScenes failed: %v", err)
	}
	if len(scenes) != 1 || scenes[0].SceneID != "solo" {
		t.Fatalf("unexpected scenes: %+v", scenes)
	}
}

func TestParseScenesRejectsMissingDescription(t *testing.T) {
	data := []byte(`{"scenes": [{"scene_id": "scene_01", "prompt": {}}]}`)
	if _, err := scenedef.ParseScenes(data); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseScenesRejectsEmpty(t *testing.T) {
	for _, data := range []string{`{}`, `{"scenes": []}`, `not json`} {
		if _, err := scenedef.ParseScenes([]byte(data)); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("expected validation error for %q, got %v", data, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenes.json")
	testsupport.WriteFile(t, path, `{"scene_id": "from_file", "prompt": {"cinematic_description": "On disk"}}`)

	scenes, err := scenedef.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(scenes) != 1 || scenes[0].SceneID != "from_file" {
		t.Fatalf("unexpected scenes: %+v", scenes)
	}

	if _, err := scenedef.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
