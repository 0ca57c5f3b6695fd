package did

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sceneforge/internal/services"
)

const (
	defaultBaseURL     = "https://api.d-id.com"
	defaultHTTPTimeout = 120 * time.Second
)

// Client drives the D-ID talks API to lip-sync generated dialogue onto a
// rendered video. Local media is uploaded to D-ID first; http(s) URLs are
// passed through untouched.
type Client struct {
	authHeader string
	baseURL    string
	httpClient *http.Client
}

// Option customizes the D-ID client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// NewClient constructs a D-ID client. Keys in the "user:secret" form are
// base64-encoded for Basic auth; pre-encoded keys are used as-is.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "did", "new", "api key required", nil)
	}
	if strings.Contains(apiKey, ":") {
		apiKey = base64.StdEncoding.EncodeToString([]byte(apiKey))
	}
	client := &Client{
		authHeader: "Basic " + apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type talkRequest struct {
	SourceURL string     `json:"source_url"`
	Script    talkScript `json:"script"`
}

type talkScript struct {
	Type     string `json:"type"`
	AudioURL string `json:"audio_url"`
}

type talkResponse struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	ResultURL   string `json:"result_url"`
	ErrorDetail struct {
		Kind        string `json:"kind"`
		Description string `json:"description"`
	} `json:"error"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Submit uploads the media as needed, creates a talk, and returns its id.
func (c *Client) Submit(ctx context.Context, videoPath, audioPath string) (string, error) {
	if strings.TrimSpace(videoPath) == "" || strings.TrimSpace(audioPath) == "" {
		return "", services.Wrap(services.ErrValidation, "did", "submit", "video and audio required", nil)
	}

	sourceURL, err := c.resolveMedia(ctx, videoPath, "/images", "image")
	if err != nil {
		return "", err
	}
	audioURL, err := c.resolveMedia(ctx, audioPath, "/audios", "audio")
	if err != nil {
		return "", err
	}

	payload := talkRequest{
		SourceURL: sourceURL,
		Script:    talkScript{Type: "audio", AudioURL: audioURL},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "did", "submit", "encode request", err)
	}

	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/talks", "application/json", bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "did", "submit", "create talk", err)
	}

	var talk talkResponse
	if err := json.Unmarshal(body, &talk); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "did", "submit", "decode response", err)
	}
	if strings.TrimSpace(talk.ID) == "" {
		return "", services.Wrap(services.ErrExternalTool, "did", "submit", "response missing talk id", nil)
	}
	return talk.ID, nil
}

// Poll reports the current state of a talk.
func (c *Client) Poll(ctx context.Context, jobID string) (services.JobStatus, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return services.JobStatus{}, services.Wrap(services.ErrValidation, "did", "poll", "job id required", nil)
	}

	endpoint, err := url.JoinPath(c.baseURL, "talks", jobID)
	if err != nil {
		return services.JobStatus{}, services.Wrap(services.ErrExternalTool, "did", "poll", "build url", err)
	}
	body, err := c.do(ctx, http.MethodGet, endpoint, "", nil)
	if err != nil {
		return services.JobStatus{}, services.Wrap(services.ErrExternalTool, "did", "poll", jobID, err)
	}

	var talk talkResponse
	if err := json.Unmarshal(body, &talk); err != nil {
		return services.JobStatus{}, services.Wrap(services.ErrExternalTool, "did", "poll", "decode response", err)
	}

	switch talk.Status {
	case "done":
		if strings.TrimSpace(talk.ResultURL) == "" {
			return services.JobStatus{
				State:  services.JobStateFailed,
				Reason: "talk finished without a result url",
			}, nil
		}
		return services.JobStatus{State: services.JobStateSucceeded, Locator: talk.ResultURL}, nil
	case "error", "rejected":
		reason := strings.TrimSpace(talk.ErrorDetail.Description)
		if reason == "" {
			reason = "talk " + talk.Status
		}
		return services.JobStatus{State: services.JobStateFailed, Reason: reason}, nil
	default:
		return services.JobStatus{State: services.JobStatePending}, nil
	}
}

// resolveMedia returns a URL D-ID can read: remote inputs pass through,
// local files are uploaded to the given endpoint first.
func (c *Client) resolveMedia(ctx context.Context, path, endpoint, field string) (string, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "did", "upload", path, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "did", "upload", "build form", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "did", "upload", path, err)
	}
	if err := writer.Close(); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "did", "upload", "finish form", err)
	}

	body, err := c.do(ctx, http.MethodPost, c.baseURL+endpoint, writer.FormDataContentType(), &buf)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "did", "upload", path, err)
	}

	var uploaded uploadResponse
	if err := json.Unmarshal(body, &uploaded); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "did", "upload", "decode response", err)
	}
	if strings.TrimSpace(uploaded.URL) == "" {
		return "", services.Wrap(services.ErrExternalTool, "did", "upload", "response missing url", nil)
	}
	return uploaded.URL, nil
}

func (c *Client) do(ctx context.Context, method, endpoint, contentType string, payload io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
