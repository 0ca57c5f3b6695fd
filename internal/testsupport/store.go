package testsupport

import (
	"testing"

	"sceneforge/internal/logging"
	"sceneforge/internal/scenestore"
)

// MustOpenStore opens a scene store rooted at a fresh temp directory.
func MustOpenStore(t testing.TB) *scenestore.Store {
	t.Helper()

	store, err := scenestore.Open(t.TempDir(), logging.NewNop())
	if err != nil {
		t.Fatalf("scenestore.Open: %v", err)
	}
	return store
}
