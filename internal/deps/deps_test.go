package deps_test

import (
	"testing"

	"sceneforge/internal/deps"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "Ghost", Command: "definitely-not-a-real-binary-9f2c"},
	})
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("expected unavailable status")
	}
	if statuses[0].Detail == "" {
		t.Fatal("expected a detail message")
	}
}

func TestCheckBinariesFindsShell(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "Shell", Command: "sh", Description: "posix shell"},
	})
	if !statuses[0].Available {
		t.Fatalf("expected sh to be available: %+v", statuses[0])
	}
	if statuses[0].Command == "sh" {
		t.Fatalf("expected resolved path, got %q", statuses[0].Command)
	}
}

func TestCheckBinariesHandlesUnconfiguredCommand(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{deps.FFmpegRequirement("  ")})
	if statuses[0].Available {
		t.Fatal("expected unavailable status for blank command")
	}
	if statuses[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail %q", statuses[0].Detail)
	}
}
