package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVoicesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List ElevenLabs voices available to the configured account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.speechClient(cfg)
			if err != nil {
				return err
			}
			voices, err := client.Voices(cmd.Context())
			if err != nil {
				return err
			}
			if len(voices) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No voices available.")
				return nil
			}

			rows := make([][]string, 0, len(voices))
			for _, voice := range voices {
				marker := ""
				if voice.VoiceID == cfg.ElevenLabs.VoiceID {
					marker = "default"
				}
				rows = append(rows, []string{voice.VoiceID, voice.Name, voice.Category, marker})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Voice ID", "Name", "Category", ""},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
