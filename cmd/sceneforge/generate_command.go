package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"sceneforge/internal/pipeline"
	"sceneforge/internal/preflight"
	"sceneforge/internal/scenedef"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var inline scenedef.Scene
	var voiceID string
	var skipLipSync bool

	cmd := &cobra.Command{
		Use:   "generate [scene-file]",
		Short: "Run the full pipeline for a single scene",
		Long:  "Run the full pipeline for one scene, defined either by a scene file or inline via --scene-id and --prompt.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := resolveGenerateScene(args, inline)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			lock, err := preflight.AcquireProjectLock(cfg.LockFilePath())
			if err != nil {
				return err
			}
			defer lock.Release()

			runner, _, err := ctx.buildRunner()
			if err != nil {
				return err
			}

			manifest, err := runner.Process(cmd.Context(), scene, pipeline.Options{
				VoiceID:     voiceID,
				SkipLipSync: skipLipSync,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderManifestTable(manifest))
			return nil
		},
	}

	cmd.Flags().StringVar(&inline.SceneID, "scene-id", "", "Scene identifier for an inline scene definition")
	cmd.Flags().StringVar(&inline.Prompt.CinematicDescription, "prompt", "", "Cinematic description for an inline scene definition")
	cmd.Flags().StringVar(&inline.Prompt.CharacterConsistency, "character", "", "Character consistency notes")
	cmd.Flags().StringVar(&inline.Prompt.CameraMovement, "camera", "", "Camera movement direction")
	cmd.Flags().StringVar(&inline.Prompt.LightingStyle, "lighting", "", "Lighting style direction")
	cmd.Flags().StringVar(&inline.Prompt.EmotionPerformance, "emotion", "", "Emotion and performance direction")
	cmd.Flags().StringVar(&inline.Prompt.DialogueText, "dialogue", "", "Dialogue to synthesize and lip-sync")
	cmd.Flags().StringVar(&voiceID, "voice", "", "Voice id override for dialogue synthesis")
	cmd.Flags().BoolVar(&skipLipSync, "skip-lipsync", false, "Skip lip-sync and keep the pre-lip-sync mezzanine")
	return cmd
}

// resolveGenerateScene picks between a scene-file argument and the inline
// flag definition. A file must hold exactly one scene; inline use needs at
// least --scene-id and --prompt.
func resolveGenerateScene(args []string, inline scenedef.Scene) (scenedef.Scene, error) {
	if len(args) == 1 {
		scenes, err := scenedef.LoadFile(args[0])
		if err != nil {
			return scenedef.Scene{}, err
		}
		if len(scenes) != 1 {
			return scenedef.Scene{}, fmt.Errorf("%s contains %d scenes; use `sceneforge batch` for multi-scene files", args[0], len(scenes))
		}
		return scenes[0], nil
	}
	if strings.TrimSpace(inline.SceneID) == "" && strings.TrimSpace(inline.Prompt.CinematicDescription) == "" {
		return scenedef.Scene{}, fmt.Errorf("provide a scene file argument, or --scene-id and --prompt for an inline scene")
	}
	if err := inline.Validate(); err != nil {
		return scenedef.Scene{}, err
	}
	return inline, nil
}

func renderManifestTable(manifest pipeline.Manifest) string {
	keys := make([]string, 0, len(manifest))
	for key := range manifest {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, manifest[key]})
	}
	return renderTable([]string{"Artifact", "Path"}, rows, []columnAlignment{alignLeft, alignLeft})
}
