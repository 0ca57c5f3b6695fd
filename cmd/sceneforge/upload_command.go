package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sceneforge/internal/scenestore"
	"sceneforge/internal/services/youtube"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var title string
	var description string
	var tags []string

	cmd := &cobra.Command{
		Use:   "upload <scene-id>",
		Short: "Publish a completed scene's final video to YouTube",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sceneID := args[0]

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.YouTube.Enabled {
				return fmt.Errorf("youtube uploads are disabled; enable the [youtube] section in the config")
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			record := store.Record(sceneID)
			if record.Status != scenestore.StatusCompleted {
				return fmt.Errorf("scene %s is %s; only completed scenes can be uploaded", sceneID, record.Status)
			}
			videoPath, ok := store.ArtifactPath(sceneID, scenestore.ArtifactFinalProRes)
			if !ok {
				return fmt.Errorf("scene %s has no final video artifact", sceneID)
			}

			uploader, err := youtube.NewUploader(cmd.Context(), youtube.Options{
				ClientSecretsFile: cfg.YouTube.ClientSecretsFile,
				TokenFile:         cfg.YouTube.TokenFile,
				PrivacyStatus:     cfg.YouTube.PrivacyStatus,
				CategoryID:        cfg.YouTube.CategoryID,
			})
			if err != nil {
				return err
			}

			if title == "" {
				title = sceneID
			}
			videoID, err := uploader.Upload(cmd.Context(), youtube.UploadRequest{
				VideoPath:   videoPath,
				Title:       title,
				Description: description,
				Tags:        tags,
			})
			if err != nil {
				return err
			}
			if err := store.AnnotateArtifact(sceneID, scenestore.ArtifactFinalProRes,
				map[string]any{"youtube_video_id": videoID}); err != nil {
				return fmt.Errorf("uploaded as %s but failed to record the video id: %w", videoID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s as https://youtu.be/%s\n", sceneID, videoID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Video title (defaults to the scene id)")
	cmd.Flags().StringVar(&description, "description", "", "Video description")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Video tag (repeatable)")
	return cmd
}
