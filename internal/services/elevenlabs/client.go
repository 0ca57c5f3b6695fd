package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"sceneforge/internal/fileutil"
	"sceneforge/internal/services"
)

const (
	defaultBaseURL     = "https://api.elevenlabs.io"
	defaultHTTPTimeout = 120 * time.Second
)

// VoiceSettings tunes delivery of synthesized speech.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Client wraps the ElevenLabs text-to-speech API.
type Client struct {
	apiKey     string
	baseURL    string
	modelID    string
	settings   VoiceSettings
	httpClient *http.Client
}

// Option customizes the ElevenLabs client.
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

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs an ElevenLabs client using the given model and voice
// settings for every synthesis request.
func NewClient(apiKey, modelID string, settings VoiceSettings, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "elevenlabs", "new", "api key required", nil)
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		modelID:    strings.TrimSpace(modelID),
		settings:   settings,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id,omitempty"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// Synthesize renders req.Text with the requested voice and writes the audio
// bytes to req.OutputPath.
func (c *Client) Synthesize(ctx context.Context, req services.SpeechRequest) error {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return services.Wrap(services.ErrValidation, "elevenlabs", "synthesize", "text required", nil)
	}
	voiceID := strings.TrimSpace(req.VoiceID)
	if voiceID == "" {
		return services.Wrap(services.ErrValidation, "elevenlabs", "synthesize", "voice id required", nil)
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return services.Wrap(services.ErrValidation, "elevenlabs", "synthesize", "output path required", nil)
	}

	payload := synthesisRequest{
		Text:          text,
		ModelID:       c.modelID,
		VoiceSettings: c.settings,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "elevenlabs", "synthesize", "encode request", err)
	}

	endpoint, err := url.JoinPath(c.baseURL, "v1", "text-to-speech", voiceID)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "elevenlabs", "synthesize", "build url", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "elevenlabs", "synthesize", "build request", err)
	}
	httpReq.Header.Set("xi-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "elevenlabs", "synthesize", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return services.Wrap(services.ErrExternalTool, "elevenlabs", "synthesize",
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	if err := fileutil.EnsureParentDir(req.OutputPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "elevenlabs", "synthesize", req.OutputPath, err)
	}
	out, err := os.Create(req.OutputPath)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "elevenlabs", "synthesize", req.OutputPath, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(req.OutputPath)
		return services.Wrap(services.ErrExternalTool, "elevenlabs", "synthesize", req.OutputPath, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(req.OutputPath)
		return services.Wrap(services.ErrExternalTool, "elevenlabs", "synthesize", req.OutputPath, err)
	}
	return nil
}

// Voice describes one available ElevenLabs voice.
type Voice struct {
	VoiceID  string `json:"voice_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type voicesResponse struct {
	Voices []Voice `json:"voices"`
}

// Voices lists the voices available to the configured account.
func (c *Client) Voices(ctx context.Context) ([]Voice, error) {
	endpoint, err := url.JoinPath(c.baseURL, "v1", "voices")
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "elevenlabs", "voices", "build url", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "elevenlabs", "voices", "build request", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "elevenlabs", "voices", "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "elevenlabs", "voices", "read body", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, services.Wrap(services.ErrExternalTool, "elevenlabs", "voices",
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var parsed voicesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "elevenlabs", "voices", "decode response", err)
	}
	return parsed.Voices, nil
}
