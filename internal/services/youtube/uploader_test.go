package youtube_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"sceneforge/internal/services"
	"sceneforge/internal/services/youtube"
	"sceneforge/internal/testsupport"
)

func TestNewUploaderRequiresSecretsFile(t *testing.T) {
	_, err := youtube.NewUploader(context.Background(), youtube.Options{
		ClientSecretsFile: filepath.Join(t.TempDir(), "missing.json"),
		TokenFile:         filepath.Join(t.TempDir(), "token.json"),
	})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNewUploaderRejectsMalformedSecrets(t *testing.T) {
	dir := t.TempDir()
	secrets := filepath.Join(dir, "client_secrets.json")
	testsupport.WriteFile(t, secrets, "not json")

	_, err := youtube.NewUploader(context.Background(), youtube.Options{
		ClientSecretsFile: secrets,
		TokenFile:         filepath.Join(dir, "token.json"),
	})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNewUploaderRequiresTokenFile(t *testing.T) {
	dir := t.TempDir()
	secrets := filepath.Join(dir, "client_secrets.json")
	testsupport.WriteFile(t, secrets, `{"installed":{"client_id":"id","client_secret":"secret","redirect_uris":["http://localhost"],"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token"}}`)

	_, err := youtube.NewUploader(context.Background(), youtube.Options{
		ClientSecretsFile: secrets,
		TokenFile:         filepath.Join(dir, "missing-token.json"),
	})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
