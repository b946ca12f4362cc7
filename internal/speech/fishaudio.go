package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	fishAudioBaseURL = "https://api.fish.audio"

	// DefaultTTSModel is the Fish Audio TTS model used when none is
	// configured. Older models ("speech-1.6", "speech-1.5") remain valid
	// selectors.
	DefaultTTSModel = "s1"
)

// FishAudioClient implements Client against the Fish Audio REST API.
type FishAudioClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewFishAudioClient creates a Fish Audio speech client. apiKey must be
// non-empty; synthesis and transcription both require it.
func NewFishAudioClient(apiKey string, opts ...Option) (*FishAudioClient, error) {
	if apiKey == "" {
		return nil, errors.New("fishaudio: api key must not be empty")
	}

	cfg := &clientConfig{
		baseURL:    fishAudioBaseURL,
		apiKey:     apiKey,
		model:      DefaultTTSModel,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &FishAudioClient{
		baseURL:    cfg.baseURL,
		apiKey:     cfg.apiKey,
		model:      cfg.model,
		httpClient: cfg.httpClient,
	}, nil
}

// ttsRequest is the JSON payload for POST /v1/tts.
type ttsRequest struct {
	Text        string `json:"text"`
	ReferenceID string `json:"reference_id,omitempty"`
	Format      string `json:"format"`
}

// asrRequest is the JSON payload for POST /v1/asr. Audio is base64-encoded
// by the JSON marshaller.
type asrRequest struct {
	Audio    []byte `json:"audio"`
	Language string `json:"language,omitempty"`
}

// asrResponse is the transcription result returned by /v1/asr.
type asrResponse struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

// Synthesize renders text as MP3 audio via the Fish Audio TTS endpoint.
// The TTS model is selected through the "model" request header.
func (c *FishAudioClient) Synthesize(ctx context.Context, req SynthesizeRequest) ([]byte, error) {
	body, err := json.Marshal(ttsRequest{
		Text:        req.Text,
		ReferenceID: req.ReferenceID,
		Format:      "mp3",
	})
	if err != nil {
		return nil, fmt.Errorf("fishaudio: encode tts request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/tts", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fishaudio: build tts request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	model := req.Model
	if model == "" {
		model = c.model
	}
	httpReq.Header.Set("Model", model)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fishaudio: tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fishaudio: tts status %d: %s", resp.StatusCode, string(b))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fishaudio: read tts response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("fishaudio: tts returned no audio")
	}
	return audio, nil
}

// Transcribe converts audio to text via the Fish Audio ASR endpoint.
func (c *FishAudioClient) Transcribe(ctx context.Context, req TranscribeRequest) (string, error) {
	body, err := json.Marshal(asrRequest{
		Audio:    req.Audio,
		Language: req.Language,
	})
	if err != nil {
		return "", fmt.Errorf("fishaudio: encode asr request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/asr", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("fishaudio: build asr request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("fishaudio: asr request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("fishaudio: asr status %d: %s", resp.StatusCode, string(b))
	}

	var out asrResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("fishaudio: decode asr response: %w", err)
	}
	return out.Text, nil
}
