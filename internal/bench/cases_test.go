package bench

import (
	"os"
	"path/filepath"
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

const smallCatalog = `
basic_emotions:
  happy:
    - "The sun is out and the coffee is warm."
    - "Everything went right this morning."
  sad:
    - "The rain has not stopped since Tuesday."
`

func TestCases(t *testing.T) {
	cat := loadCatalog(t, smallCatalog)
	roster := []voices.Reference{{ID: "v1"}, {ID: "v2"}}

	cases := Cases(cat, roster, 2)
	require.Len(t, cases, 12, "3 phrases x 2 voices x 2 runs")

	// Voice-major order: the first half belongs to the first voice.
	for _, c := range cases[:6] {
		assert.Equal(t, "v1", c.Voice.ID)
	}
	for _, c := range cases[6:] {
		assert.Equal(t, "v2", c.Voice.ID)
	}

	assert.Equal(t, Case{
		Emotion:   "happy",
		Phrase:    "The sun is out and the coffee is warm.",
		PhraseIdx: 1,
		Category:  "basic_emotions",
		Voice:     voices.Reference{ID: "v1"},
		Run:       1,
	}, cases[0])
	assert.Equal(t, 2, cases[1].Run, "run numbers repeat per phrase")
	assert.Equal(t, "sad", cases[4].Emotion)
	assert.Equal(t, 1, cases[4].PhraseIdx, "phrase index restarts per emotion")
}

func TestCasesClampsRuns(t *testing.T) {
	cat := loadCatalog(t, smallCatalog)
	roster := []voices.Reference{voices.Default}

	assert.Len(t, Cases(cat, roster, 0), 3)
	assert.Len(t, Cases(cat, roster, -2), 3)
}

func TestFilterByEmotion(t *testing.T) {
	cat := loadCatalog(t, smallCatalog)
	cases := filterByEmotion(Cases(cat, []voices.Reference{voices.Default}, 1), "sad")

	require.Len(t, cases, 1)
	assert.Equal(t, "sad", cases[0].Emotion)
}
