// Package results collects benchmark outcomes and renders them as JSON
// and markdown artifacts.
package results

import "time"

// Status classifies the outcome of a single benchmark case.
type Status string

const (
	// StatusPass means the emotion tag did not appear in the transcription.
	StatusPass Status = "PASS"
	// StatusFail means the tag leaked into the transcription.
	StatusFail Status = "FAIL"
	// StatusError means synthesis, persistence or transcription failed.
	StatusError Status = "ERROR"
)

// BenchmarkResult is the outcome of one synthesized and transcribed
// phrase for one voice and run. Transcription is nil when the pipeline
// errored before producing text; Error is nil unless the case failed
// or errored.
type BenchmarkResult struct {
	Emotion       string  `json:"emotion"`
	Voice         string  `json:"voice"`
	PhraseIdx     int     `json:"phrase_idx"`
	Phrase        string  `json:"phrase"`
	RunNumber     int     `json:"run_number"`
	Category      string  `json:"category"`
	Status        Status  `json:"status"`
	Transcription *string `json:"transcription"`
	Error         *string `json:"error"`
}

// RunInfo records metadata about the benchmark execution that produced
// a result set.
type RunInfo struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
	Cases     int           `json:"cases"`
	Workers   int           `json:"workers"`
}

// StringPtr returns a pointer to s. Convenience for the optional
// transcription and error fields.
func StringPtr(s string) *string {
	return &s
}
