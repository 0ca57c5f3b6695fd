package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sceneforge/internal/pipeline"
	"sceneforge/internal/preflight"
	"sceneforge/internal/scenedef"
	"sceneforge/internal/scenestore"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var voiceID string
	var skipLipSync bool

	cmd := &cobra.Command{
		Use:   "batch <scene-file>",
		Short: "Run the pipeline for every scene in a file, continuing past failures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenes, err := scenedef.LoadFile(args[0])
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

			entries := runner.RunAll(cmd.Context(), scenes, pipeline.Options{
				VoiceID:     voiceID,
				SkipLipSync: skipLipSync,
			})

			fmt.Fprintln(cmd.OutOrStdout(), renderBatchTable(entries))

			failed := 0
			for _, entry := range entries {
				if entry.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenes failed", failed, len(entries))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&voiceID, "voice", "", "Voice id override for dialogue synthesis")
	cmd.Flags().BoolVar(&skipLipSync, "skip-lipsync", false, "Skip lip-sync and keep the pre-lip-sync mezzanine")
	return cmd
}

func renderBatchTable(entries []pipeline.BatchEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Err != nil {
			rows = append(rows, []string{entry.SceneID, "failed", entry.Err.Error()})
			continue
		}
		rows = append(rows, []string{entry.SceneID, "completed", entry.Manifest[scenestore.ArtifactFinalProRes]})
	}
	return renderTable([]string{"Scene", "Result", "Detail"}, rows, []columnAlignment{alignLeft, alignLeft, alignLeft})
}
