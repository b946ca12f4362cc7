// Package speech abstracts the TTS and STT services the benchmark drives.
// Backends are thin request/response wrappers; the benchmark treats them as
// black boxes and classifies any backend failure as an ERROR result.
package speech

import "context"

// SynthesizeRequest asks a TTS backend to render text as audio.
type SynthesizeRequest struct {
	// Text is the input text, including the leading emotion tag,
	// e.g. "(happy) What a day!".
	Text string

	// ReferenceID selects a voice model. Empty means the backend's
	// default voice.
	ReferenceID string

	// Model overrides the client's default TTS model for this request.
	Model string
}

// TranscribeRequest asks an STT backend to transcribe audio.
type TranscribeRequest struct {
	// Audio is the encoded audio (MP3 as produced by Synthesize).
	Audio []byte

	// Language is an optional language hint (e.g. "en"). Empty lets the
	// backend auto-detect.
	Language string
}

// Client abstracts a speech service offering both synthesis and transcription.
type Client interface {
	// Synthesize renders text to audio and returns the encoded bytes.
	Synthesize(ctx context.Context, req SynthesizeRequest) ([]byte, error)

	// Transcribe converts audio back to text.
	Transcribe(ctx context.Context, req TranscribeRequest) (string, error)
}
