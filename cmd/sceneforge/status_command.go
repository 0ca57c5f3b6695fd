package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sceneforge/internal/scenestore"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show per-scene pipeline status for the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			snapshot, err := store.Snapshot()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project: %s\n", snapshot.Root)
			if len(snapshot.Scenes) == 0 {
				fmt.Fprintln(out, "No scenes yet.")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Scene", "Status", "Artifacts"},
				sceneRows(snapshot),
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

var statusTitle = cases.Title(language.English)

// sceneRows flattens a snapshot into sorted table rows.
func sceneRows(snapshot scenestore.ProjectSnapshot) [][]string {
	ids := make([]string, 0, len(snapshot.Scenes))
	for id := range snapshot.Scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		summary := snapshot.Scenes[id]
		rows = append(rows, []string{
			id,
			displayStatus(summary.Status),
			fmt.Sprintf("%d", len(summary.ArtifactKeys)),
		})
	}
	return rows
}

func displayStatus(status scenestore.Status) string {
	return statusTitle.String(strings.ReplaceAll(string(status), "_", " "))
}
