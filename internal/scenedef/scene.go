package scenedef

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"sceneforge/internal/services"
)

// Scene is one unit of pipeline work.
type Scene struct {
	SceneID string `json:"scene_id"`
	Prompt  Prompt `json:"prompt"`
	// OutputDir optionally overrides where the scene directory is created.
	OutputDir string `json:"output_dir,omitempty"`
}

// Validate checks the definition before pipeline invocation.
func (s Scene) Validate() error {
	if strings.TrimSpace(s.SceneID) == "" {
		return services.Wrap(services.ErrValidation, "scene", "validate", "scene_id is required", nil)
	}
	if strings.TrimSpace(s.Prompt.CinematicDescription) == "" {
		return services.Wrap(services.ErrValidation, "scene", "validate",
			fmt.Sprintf("scene %s: prompt.cinematic_description is required", s.SceneID), nil)
	}
	return nil
}

type sceneFile struct {
	Scenes []Scene `json:"scenes"`
	Scene
}

// ParseScenes decodes scene definitions from JSON bytes. Both a single scene
// object and a batch wrapper {"scenes": [...]} are accepted.
func ParseScenes(data []byte) ([]Scene, error) {
	var file sceneFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, services.Wrap(services.ErrValidation, "scene", "parse", "invalid scene file", err)
	}

	scenes := file.Scenes
	if len(scenes) == 0 {
		if strings.TrimSpace(file.SceneID) == "" {
			return nil, services.Wrap(services.ErrValidation, "scene", "parse",
				"scene file must contain a scene object or a non-empty scenes list", nil)
		}
		scenes = []Scene{file.Scene}
	}

	for _, scene := range scenes {
		if err := scene.Validate(); err != nil {
			return nil, err
		}
	}
	return scenes, nil
}

// LoadFile reads scene definitions from a JSON file.
func LoadFile(path string) ([]Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "scene", "load", path, err)
	}
	return ParseScenes(data)
}
