package estimate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/emotion-bench/internal/catalog"
	"github.com/giantswarm/emotion-bench/internal/voices"
)

func loadCatalog(t *testing.T, content string) *catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "emotions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	cat, err := catalog.Load(path)
	require.NoError(t, err)
	return cat
}

// Two emotions with one phrase each. The rendered texts "(a) 123456"
// and "(b) 12345678" weigh 10 and 12 UTF-8 bytes.
const twoEmotionCatalog = `
basic_emotions:
  a:
    - "123456"
  b:
    - "12345678"
`

func TestEstimateWorkedExample(t *testing.T) {
	cat := loadCatalog(t, twoEmotionCatalog)
	rep := Estimate(cat, []voices.Reference{{ID: "v1"}}, 1)

	assert.Equal(t, 2, rep.Emotions)
	assert.Equal(t, 2, rep.BaseCases)
	assert.Equal(t, 2, rep.TotalCalls)
	assert.Equal(t, 22, rep.CharsPerRun)
	assert.Equal(t, 22, rep.BytesPerRun)
	assert.Equal(t, 22, rep.TotalBytes)
	assert.InDelta(t, 1.0, rep.PhrasesPerEmotion, 1e-12)
	assert.InDelta(t, 15.0, rep.CostPerMillionBytes, 1e-12)
	assert.InDelta(t, 22.0/1_000_000*15.0, rep.EstimatedCost, 1e-12)
}

func TestEstimateScalesWithVoicesAndRuns(t *testing.T) {
	cat := loadCatalog(t, twoEmotionCatalog)
	roster := []voices.Reference{{ID: "v1"}, {ID: "v2"}, {ID: "v3"}}
	rep := Estimate(cat, roster, 2)

	assert.Equal(t, 2, rep.BaseCases)
	assert.Equal(t, 12, rep.TotalCalls, "2 cases x 3 voices x 2 runs")
	assert.Equal(t, 22, rep.BytesPerRun, "per-run size is independent of voices and runs")
	assert.Equal(t, 132, rep.TotalBytes)
	assert.InDelta(t, 6.0, rep.SampleSizePerEmotion, 1e-12)
	assert.InDelta(t, 132.0/1_000_000*15.0, rep.EstimatedCost, 1e-12)
}

func TestEstimateCountsRunesAndBytesSeparately(t *testing.T) {
	cat := loadCatalog(t, `
basic_emotions:
  x:
    - "café"
`)
	rep := Estimate(cat, []voices.Reference{voices.Default}, 1)

	// "(x) café" is 8 runes but 9 UTF-8 bytes.
	assert.Equal(t, 8, rep.CharsPerRun)
	assert.Equal(t, 9, rep.BytesPerRun)
}

func TestEstimateBreakdownPerEmotion(t *testing.T) {
	cat := loadCatalog(t, `
basic_emotions:
  a:
    - "one"
    - "two two"
  b:
    - "three"
`)
	rep := Estimate(cat, []voices.Reference{{ID: "v"}}, 1)

	require.Len(t, rep.Breakdown, 2)
	assert.Equal(t, "a", rep.Breakdown[0].Tag)
	assert.Equal(t, 2, rep.Breakdown[0].Phrases)
	// "(a) one" + "(a) two two" = 7 + 11 bytes.
	assert.Equal(t, 18, rep.Breakdown[0].Bytes)
	assert.Equal(t, "b", rep.Breakdown[1].Tag)
	assert.Equal(t, 1, rep.Breakdown[1].Phrases)
}

func TestEstimateCostRateOverride(t *testing.T) {
	cat := loadCatalog(t, twoEmotionCatalog)
	rep := Estimate(cat, []voices.Reference{{ID: "v"}}, 1, WithCostPerMillionBytes(30))

	assert.InDelta(t, 30.0, rep.CostPerMillionBytes, 1e-12)
	assert.InDelta(t, 22.0/1_000_000*30.0, rep.EstimatedCost, 1e-12)
}

func TestConfidenceIntervals(t *testing.T) {
	t.Run("non-positive sample size", func(t *testing.T) {
		m95, m99 := ConfidenceIntervals(0)
		assert.Zero(t, m95)
		assert.Zero(t, m99)

		m95, m99 = ConfidenceIntervals(-3)
		assert.Zero(t, m95)
		assert.Zero(t, m99)
	})

	t.Run("known values at n=100", func(t *testing.T) {
		m95, m99 := ConfidenceIntervals(100)
		assert.InDelta(t, 0.0979981992270027, m95, 1e-12)
		assert.InDelta(t, 0.1287914651774450, m99, 1e-12)
	})

	t.Run("margin shrinks as the sample grows", func(t *testing.T) {
		m25, _ := ConfidenceIntervals(25)
		m100, _ := ConfidenceIntervals(100)
		m400, _ := ConfidenceIntervals(400)
		assert.Greater(t, m25, m100)
		assert.Greater(t, m100, m400)
	})

	t.Run("99 is wider than 95", func(t *testing.T) {
		m95, m99 := ConfidenceIntervals(50)
		assert.Greater(t, m99, m95)
	})
}

func TestRenderBanner(t *testing.T) {
	cat := loadCatalog(t, twoEmotionCatalog)
	roster := []voices.Reference{voices.Default, {ID: "802e3bc2b27e49c2995d23ef70e6ac89"}}
	out := Estimate(cat, roster, 1).Render()

	assert.Contains(t, out, strings.Repeat("=", 60))
	assert.Contains(t, out, "BENCHMARK COST ESTIMATION")
	assert.Contains(t, out, "Emotions: 2")
	assert.Contains(t, out, "STATISTICAL CONFIDENCE:")
	assert.Contains(t, out, "Margin of error (95% CI): ±")
	assert.Contains(t, out, "Total TTS calls: 4 (2 × 2 voices × 1 runs)")
	// 22 bytes x 2 voices at $15/M.
	assert.Contains(t, out, "Estimated TTS cost: $0.0007")
	assert.Contains(t, out, "  - default (no reference)")
	assert.Contains(t, out, "  - 802e3bc2b27e49c2995d23ef70e6ac89")
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "0", groupThousands(0))
	assert.Equal(t, "999", groupThousands(999))
	assert.Equal(t, "1,000", groupThousands(1000))
	assert.Equal(t, "12,345", groupThousands(12345))
	assert.Equal(t, "1,234,567", groupThousands(1234567))
}
