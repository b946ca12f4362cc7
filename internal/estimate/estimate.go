// Package estimate computes projected synthesis volume, cost and
// statistical confidence for a benchmark configuration before any API
// call is made.
package estimate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/giantswarm/emotion-bench/internal/catalog"
	"github.com/giantswarm/emotion-bench/internal/voices"
)

// Two-tailed normal critical values for the 95% and 99% confidence levels.
const (
	zScore95 = 1.959963984540054
	zScore99 = 2.5758293035489004
)

// worstCaseProportion maximises the variance term of the margin of
// error, giving the widest interval a pass/fail proportion can have.
const worstCaseProportion = 0.5

// DefaultCostPerMillionBytes is the Fish Audio TTS list price in USD
// per million UTF-8 bytes of input text.
const DefaultCostPerMillionBytes = 15.0

// EmotionCost aggregates the synthesis input size for one emotion.
type EmotionCost struct {
	Tag     string `json:"emotion"`
	Phrases int    `json:"phrases"`
	Chars   int    `json:"chars"`
	Bytes   int    `json:"bytes"`
}

// Report holds the projected volume, confidence and cost figures for a
// benchmark configuration.
type Report struct {
	Emotions          int     `json:"emotions"`
	PhrasesPerEmotion float64 `json:"phrases_per_emotion"`
	RunsPerPhrase     int     `json:"runs_per_phrase"`
	Voices            int     `json:"voices"`

	SampleSizePerEmotion float64 `json:"sample_size_per_emotion"`
	MarginError95        float64 `json:"margin_error_95"`
	MarginError99        float64 `json:"margin_error_99"`

	BaseCases  int `json:"base_cases"`
	TotalCalls int `json:"total_tts_calls"`

	CharsPerRun int `json:"chars_per_run"`
	BytesPerRun int `json:"bytes_per_run"`
	TotalBytes  int `json:"total_bytes"`

	CostPerMillionBytes float64 `json:"cost_per_million_bytes"`
	EstimatedCost       float64 `json:"estimated_cost_usd"`

	Breakdown []EmotionCost      `json:"breakdown"`
	Roster    []voices.Reference `json:"-"`
}

// Option adjusts the assumptions used when computing a Report.
type Option func(*Report)

// WithCostPerMillionBytes overrides the TTS price used for the cost
// projection.
func WithCostPerMillionBytes(rate float64) Option {
	return func(r *Report) {
		r.CostPerMillionBytes = rate
	}
}

// ConfidenceIntervals returns the worst-case margin of error at the 95%
// and 99% confidence levels for the given sample size. Both margins are
// proportions in [0, 1]. Non-positive sample sizes yield zero margins.
func ConfidenceIntervals(sampleSize float64) (margin95, margin99 float64) {
	if sampleSize <= 0 {
		return 0, 0
	}
	se := math.Sqrt(worstCaseProportion * (1 - worstCaseProportion) / sampleSize)
	return zScore95 * se, zScore99 * se
}

// Estimate sizes a full benchmark over the given catalog, voice roster
// and per-phrase run count. The computation is pure: the exact text
// sent to the synthesizer, "(tag) phrase", is measured in characters
// and UTF-8 bytes without touching the network.
func Estimate(cat *catalog.Catalog, roster []voices.Reference, runsPerPhrase int, opts ...Option) *Report {
	r := &Report{
		RunsPerPhrase:       runsPerPhrase,
		Voices:              len(roster),
		Roster:              append([]voices.Reference(nil), roster...),
		CostPerMillionBytes: DefaultCostPerMillionBytes,
	}
	for _, opt := range opts {
		opt(r)
	}

	byTag := make(map[string]int)
	for _, item := range cat.All() {
		text := fmt.Sprintf("(%s) %s", item.Tag, item.Phrase)
		chars := len([]rune(text))
		size := len(text)

		i, ok := byTag[item.Tag]
		if !ok {
			i = len(r.Breakdown)
			byTag[item.Tag] = i
			r.Breakdown = append(r.Breakdown, EmotionCost{Tag: item.Tag})
		}
		r.Breakdown[i].Phrases++
		r.Breakdown[i].Chars += chars
		r.Breakdown[i].Bytes += size

		r.BaseCases++
		r.CharsPerRun += chars
		r.BytesPerRun += size
	}

	r.Emotions = len(r.Breakdown)
	if r.Emotions > 0 {
		r.PhrasesPerEmotion = float64(r.BaseCases) / float64(r.Emotions)
	}

	r.TotalCalls = r.BaseCases * r.Voices * r.RunsPerPhrase
	r.TotalBytes = r.BytesPerRun * r.Voices * r.RunsPerPhrase
	r.EstimatedCost = float64(r.TotalBytes) / 1_000_000 * r.CostPerMillionBytes

	r.SampleSizePerEmotion = r.PhrasesPerEmotion * float64(r.RunsPerPhrase) * float64(r.Voices)
	r.MarginError95, r.MarginError99 = ConfidenceIntervals(r.SampleSizePerEmotion)

	return r
}

// Render formats the report as the console banner printed by the
// estimate command.
func (r *Report) Render() string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "BENCHMARK COST ESTIMATION")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Emotions: %d\n", r.Emotions)
	fmt.Fprintf(&b, "Phrases per emotion: %.0f\n", r.PhrasesPerEmotion)
	fmt.Fprintf(&b, "Runs per phrase: %d\n", r.RunsPerPhrase)
	fmt.Fprintf(&b, "Voices to test: %d\n", r.Voices)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "STATISTICAL CONFIDENCE:")
	fmt.Fprintf(&b, "Sample size per emotion: %.0f tests\n", r.SampleSizePerEmotion)
	fmt.Fprintf(&b, "Margin of error (95%% CI): ±%.1f%%\n", r.MarginError95*100)
	fmt.Fprintf(&b, "Margin of error (99%% CI): ±%.1f%%\n", r.MarginError99*100)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Base test cases: %d\n", r.BaseCases)
	fmt.Fprintf(&b, "Total TTS calls: %s (%d × %d voices × %d runs)\n",
		groupThousands(r.TotalCalls), r.BaseCases, r.Voices, r.RunsPerPhrase)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Characters per run: %s\n", groupThousands(r.CharsPerRun))
	fmt.Fprintf(&b, "UTF-8 bytes per run: %s\n", groupThousands(r.BytesPerRun))
	fmt.Fprintf(&b, "Total UTF-8 bytes (all runs): %s\n", groupThousands(r.TotalBytes))
	fmt.Fprintf(&b, "Total UTF-8 MB: %.3f\n", float64(r.TotalBytes)/1_000_000)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Estimated TTS cost: $%.4f\n", r.EstimatedCost)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Note: This only accounts for TTS. STT costs are separate.")
	fmt.Fprintln(&b, "      (STT pricing depends on audio duration)")
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Voices being tested:")
	for _, ref := range r.Roster {
		label := ref.ID
		if ref.IsDefault() {
			label = "default (no reference)"
		}
		fmt.Fprintf(&b, "  - %s\n", label)
	}

	return b.String()
}

// groupThousands renders n with comma separators, e.g. 12345 -> "12,345".
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
