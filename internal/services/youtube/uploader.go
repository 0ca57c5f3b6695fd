// Package youtube publishes finished scene videos to a YouTube channel
// using stored OAuth credentials.
package youtube

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"sceneforge/internal/services"
)

// Options configures the uploader from stored OAuth material.
type Options struct {
	ClientSecretsFile string
	TokenFile         string
	PrivacyStatus     string
	CategoryID        string
}

// Uploader publishes videos through the YouTube Data API.
type Uploader struct {
	service       *yt.Service
	privacyStatus string
	categoryID    string
}

// NewUploader builds a YouTube client from the client secrets and a
// previously authorized token file.
func NewUploader(ctx context.Context, opts Options) (*Uploader, error) {
	secrets, err := os.ReadFile(opts.ClientSecretsFile)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "youtube", "new", "read client secrets", err)
	}
	oauthConfig, err := google.ConfigFromJSON(secrets, yt.YoutubeUploadScope)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "youtube", "new", "parse client secrets", err)
	}

	tokenBytes, err := os.ReadFile(opts.TokenFile)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "youtube", "new", "read token file", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenBytes, &token); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "youtube", "new", "parse token file", err)
	}

	service, err := yt.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, &token)))
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "youtube", "new", "build service", err)
	}

	privacy := strings.TrimSpace(opts.PrivacyStatus)
	if privacy == "" {
		privacy = "private"
	}
	category := strings.TrimSpace(opts.CategoryID)
	if category == "" {
		category = "22"
	}
	return &Uploader{service: service, privacyStatus: privacy, categoryID: category}, nil
}

// UploadRequest describes the video to publish.
type UploadRequest struct {
	VideoPath   string
	Title       string
	Description string
	Tags        []string
}

// Upload publishes the video and returns its YouTube id.
func (u *Uploader) Upload(ctx context.Context, req UploadRequest) (string, error) {
	if strings.TrimSpace(req.VideoPath) == "" {
		return "", services.Wrap(services.ErrValidation, "youtube", "upload", "video path required", nil)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return "", services.Wrap(services.ErrValidation, "youtube", "upload", "title required", nil)
	}

	file, err := os.Open(req.VideoPath)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "youtube", "upload", req.VideoPath, err)
	}
	defer file.Close()

	video := &yt.Video{
		Snippet: &yt.VideoSnippet{
			Title:       title,
			Description: req.Description,
			Tags:        req.Tags,
			CategoryId:  u.categoryID,
		},
		Status: &yt.VideoStatus{PrivacyStatus: u.privacyStatus},
	}
	call := u.service.Videos.Insert([]string{"snippet", "status"}, video).Context(ctx).Media(file)
	uploaded, err := call.Do()
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "youtube", "upload", req.VideoPath, err)
	}
	return uploaded.Id, nil
}
