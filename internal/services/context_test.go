package services_test

import (
	"context"
	"testing"

	"sceneforge/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSceneID(ctx, "scene_01")
	ctx = services.WithStage(ctx, "generating_video")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.SceneIDFromContext(ctx); !ok || id != "scene_01" {
		t.Fatalf("unexpected scene id: %v %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "generating_video" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSceneID(ctx, "")
	ctx = services.WithStage(ctx, "")
	if _, ok := services.SceneIDFromContext(ctx); ok {
		t.Fatal("expected no scene id value")
	}
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
}
