package server

import (
	"github.com/giantswarm/emotion-bench/internal/speech"
)

// ServerContext holds shared dependencies for MCP tool handlers.
type ServerContext struct {
	SpeechClient speech.Client
	OutputDir    string
	CatalogPath  string // external emotion catalog file (optional)
	DefaultRuns  int
}
