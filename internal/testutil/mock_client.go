// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/giantswarm/emotion-bench/internal/speech"
)

// audioPrefix marks audio produced by the mock. The synthesized text
// rides inside the audio bytes so Transcribe can answer from it.
const audioPrefix = "mock-audio:"

// MockSpeechClient is a configurable mock for speech.Client used across
// test packages. It is safe for concurrent use so runner tests can
// drive it from several workers at once.
type MockSpeechClient struct {
	mu sync.Mutex

	// Transcriptions maps synthesized text to the transcription
	// returned for the corresponding audio. Texts without an entry fall
	// back to DefaultTranscription, then to the text itself (so the tag
	// leaks verbatim unless configured otherwise).
	Transcriptions map[string]string

	// DefaultTranscription is returned for any audio without a
	// Transcriptions entry.
	DefaultTranscription string

	// SynthesizeErrs fails Synthesize for the listed texts.
	SynthesizeErrs map[string]error

	// TranscribeErrs fails Transcribe for audio of the listed texts.
	TranscribeErrs map[string]error

	// SynthesizeCalls and TranscribeCalls count invocations.
	SynthesizeCalls int
	TranscribeCalls int

	// LastSynthesize and LastTranscribe store the most recent requests
	// for inspection.
	LastSynthesize speech.SynthesizeRequest
	LastTranscribe speech.TranscribeRequest
}

func (m *MockSpeechClient) Synthesize(_ context.Context, req speech.SynthesizeRequest) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SynthesizeCalls++
	m.LastSynthesize = req

	if err, ok := m.SynthesizeErrs[req.Text]; ok {
		return nil, err
	}
	return []byte(audioPrefix + req.Text), nil
}

func (m *MockSpeechClient) Transcribe(_ context.Context, req speech.TranscribeRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TranscribeCalls++
	m.LastTranscribe = req

	text := strings.TrimPrefix(string(req.Audio), audioPrefix)
	if err, ok := m.TranscribeErrs[text]; ok {
		return "", err
	}
	if resp, ok := m.Transcriptions[text]; ok {
		return resp, nil
	}
	if m.DefaultTranscription != "" {
		return m.DefaultTranscription, nil
	}
	return text, nil
}
