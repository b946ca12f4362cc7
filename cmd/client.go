package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/giantswarm/emotion-bench/internal/speech"
)

const (
	providerFishAudio = "fishaudio"
	providerOpenAI    = "openai"
)

// newSpeechClient creates a speech client for the requested provider from
// common CLI flags. API keys fall back to the FISH_AUDIO_API_KEY or
// OPENAI_API_KEY environment variable when no explicit key is provided.
func newSpeechClient(provider, endpoint, apiKey, model string) (speech.Client, error) {
	var opts []speech.Option
	if endpoint != "" {
		opts = append(opts, speech.WithBaseURL(endpoint))
	}
	if model != "" {
		opts = append(opts, speech.WithModel(model))
	}

	switch provider {
	case providerFishAudio:
		if apiKey == "" {
			apiKey = os.Getenv("FISH_AUDIO_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("Fish Audio API key is required (--api-key or FISH_AUDIO_API_KEY)")
		}
		return speech.NewFishAudioClient(apiKey, opts...)
	case providerOpenAI:
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required (--api-key or OPENAI_API_KEY)")
		}
		return speech.NewOpenAIClient(apiKey, opts...)
	default:
		return nil, fmt.Errorf("unsupported provider %q (supported: %s, %s)", provider, providerFishAudio, providerOpenAI)
	}
}

// newSpeechClientFromEnv picks a provider from whichever credential is
// configured, preferring Fish Audio. Used by the MCP server, which has no
// per-invocation provider flags.
func newSpeechClientFromEnv() (speech.Client, error) {
	if key := os.Getenv("FISH_AUDIO_API_KEY"); key != "" {
		return speech.NewFishAudioClient(key)
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return speech.NewOpenAIClient(key)
	}
	return nil, fmt.Errorf("no speech credentials configured (set FISH_AUDIO_API_KEY or OPENAI_API_KEY)")
}

// runsFromEnv reads NUM_RUNS, defaulting to 1 when unset or invalid.
func runsFromEnv() int {
	v := os.Getenv("NUM_RUNS")
	if v == "" {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
