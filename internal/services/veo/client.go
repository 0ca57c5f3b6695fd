package veo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sceneforge/internal/fileutil"
	"sceneforge/internal/services"
)

const (
	defaultBaseURL     = "https://generativelanguage.googleapis.com/v1beta"
	defaultHTTPTimeout = 60 * time.Second
)

// Client drives the Veo long-running video generation surface of the Gemini
// API. Submitted jobs are tracked in an in-memory table keyed by job id, so
// handles do not survive process restarts.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client

	mu         sync.Mutex
	operations map[string]string
}

// Option customizes the Veo client.
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

// NewClient constructs a Veo API client for the given model.
func NewClient(apiKey, model string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "veo", "new", "api key required", nil)
	}
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, services.Wrap(services.ErrConfiguration, "veo", "new", "model required", nil)
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      model,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		operations: make(map[string]string),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters map[string]any    `json:"parameters,omitempty"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type operationResponse struct {
	Name     string          `json:"name"`
	Done     bool            `json:"done"`
	Error    *operationError `json:"error,omitempty"`
	Response *predictResult  `json:"response,omitempty"`
}

type operationError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type predictResult struct {
	GenerateVideoResponse struct {
		GeneratedSamples []struct {
			Video struct {
				URI          string `json:"uri"`
				EncodedVideo string `json:"encodedVideo"`
			} `json:"video"`
		} `json:"generatedSamples"`
	} `json:"generateVideoResponse"`
}

// Submit starts a long-running generation job and returns an opaque job id.
func (c *Client) Submit(ctx context.Context, req services.GenerationRequest) (string, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", services.Wrap(services.ErrValidation, "veo", "submit", "prompt required", nil)
	}

	parameters := map[string]any{}
	if req.DurationSeconds > 0 {
		parameters["durationSeconds"] = req.DurationSeconds
	}
	if strings.TrimSpace(req.AspectRatio) != "" {
		parameters["aspectRatio"] = req.AspectRatio
	}
	for key, value := range req.Extra {
		parameters[key] = value
	}

	payload := predictRequest{
		Instances:  []predictInstance{{Prompt: prompt}},
		Parameters: parameters,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "veo", "submit", "encode request", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:predictLongRunning", c.baseURL, c.model)
	body, err := c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "veo", "submit", c.model, err)
	}

	var operation operationResponse
	if err := json.Unmarshal(body, &operation); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "veo", "submit", "decode response", err)
	}
	if strings.TrimSpace(operation.Name) == "" {
		return "", services.Wrap(services.ErrExternalTool, "veo", "submit", "response missing operation name", nil)
	}

	jobID := uuid.NewString()
	c.mu.Lock()
	c.operations[jobID] = operation.Name
	c.mu.Unlock()
	return jobID, nil
}

// Poll reports the current state of a submitted job.
func (c *Client) Poll(ctx context.Context, jobID string) (services.JobStatus, error) {
	c.mu.Lock()
	operationName, ok := c.operations[jobID]
	c.mu.Unlock()
	if !ok {
		return services.JobStatus{}, services.Wrap(services.ErrNotFound, "veo", "poll",
			fmt.Sprintf("unknown job %s", jobID), nil)
	}

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimPrefix(operationName, "/"))
	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return services.JobStatus{}, services.Wrap(services.ErrExternalTool, "veo", "poll", operationName, err)
	}

	var operation operationResponse
	if err := json.Unmarshal(body, &operation); err != nil {
		return services.JobStatus{}, services.Wrap(services.ErrExternalTool, "veo", "poll", "decode response", err)
	}

	if !operation.Done {
		return services.JobStatus{State: services.JobStatePending}, nil
	}
	if operation.Error != nil {
		return services.JobStatus{
			State:  services.JobStateFailed,
			Reason: fmt.Sprintf("generation error %d: %s", operation.Error.Code, operation.Error.Message),
		}, nil
	}
	locator, inline := extractVideo(operation.Response)
	if locator == "" && inline == "" {
		return services.JobStatus{
			State:  services.JobStateFailed,
			Reason: "operation finished without a video result",
		}, nil
	}
	if locator == "" {
		locator = inlinePrefix + inline
	}
	return services.JobStatus{State: services.JobStateSucceeded, Locator: locator}, nil
}

// inlinePrefix marks locators that carry base64 video bytes instead of a URL.
const inlinePrefix = "inline:"

// Fetch downloads the finished video identified by locator into localPath.
func (c *Client) Fetch(ctx context.Context, locator, localPath string) error {
	if strings.TrimSpace(locator) == "" {
		return services.Wrap(services.ErrValidation, "veo", "fetch", "locator required", nil)
	}
	if err := fileutil.EnsureParentDir(localPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "veo", "fetch", localPath, err)
	}

	if encoded, ok := strings.CutPrefix(locator, inlinePrefix); ok {
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return services.Wrap(services.ErrExternalTool, "veo", "fetch", "decode inline video", err)
		}
		if err := os.WriteFile(localPath, data, 0o644); err != nil {
			return services.Wrap(services.ErrExternalTool, "veo", "fetch", localPath, err)
		}
		return nil
	}

	if err := c.stream(ctx, locator, localPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "veo", "fetch", locator, err)
	}
	return nil
}

// stream copies an authenticated download straight to disk; buffering a full
// video in memory is not acceptable. Partial files are removed on failure.
func (c *Client) stream(ctx context.Context, endpoint, localPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http %d", resp.StatusCode)
	}

	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(localPath)
		return fmt.Errorf("write file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(localPath)
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
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

func extractVideo(result *predictResult) (uri, inline string) {
	if result == nil {
		return "", ""
	}
	for _, sample := range result.GenerateVideoResponse.GeneratedSamples {
		if strings.TrimSpace(sample.Video.URI) != "" {
			return sample.Video.URI, ""
		}
		if strings.TrimSpace(sample.Video.EncodedVideo) != "" {
			return "", sample.Video.EncodedVideo
		}
	}
	return "", ""
}
