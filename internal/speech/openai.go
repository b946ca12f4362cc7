package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Client using the OpenAI audio APIs: speech
// synthesis via tts-1 and transcription via whisper-1. It exists so the
// leakage benchmark can be pointed at an OpenAI-compatible stack for
// comparison runs; emotion tags ride along in the input text exactly as
// they do for Fish Audio.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates an OpenAI-backed speech client.
func NewOpenAIClient(apiKey string, opts ...Option) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai: api key must not be empty")
	}

	cfg := &clientConfig{
		apiKey: apiKey,
		model:  string(openai.TTSModel1),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	config := openai.DefaultConfig(cfg.apiKey)
	if cfg.baseURL != "" {
		config.BaseURL = cfg.baseURL
	}
	if cfg.httpClient != nil {
		config.HTTPClient = cfg.httpClient
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  cfg.model,
	}, nil
}

// Synthesize renders text as MP3 audio. The reference voice maps onto an
// OpenAI voice name; the no-reference default is "alloy".
func (c *OpenAIClient) Synthesize(ctx context.Context, req SynthesizeRequest) ([]byte, error) {
	voice := openai.VoiceAlloy
	if req.ReferenceID != "" {
		voice = openai.SpeechVoice(req.ReferenceID)
	}

	model := c.model
	if req.Model != "" {
		model = req.Model
	}

	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(model),
		Input:          req.Text,
		Voice:          voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: speech request: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("openai: read speech response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("openai: speech returned no audio")
	}
	return audio, nil
}

// Transcribe converts audio to text via whisper-1.
func (c *OpenAIClient) Transcribe(ctx context.Context, req TranscribeRequest) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: "audio.mp3",
		Reader:   bytes.NewReader(req.Audio),
		Language: req.Language,
	})
	if err != nil {
		return "", fmt.Errorf("openai: transcription request: %w", err)
	}
	return resp.Text, nil
}
