package results

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output", "benchmark_results.json")

	c := NewCollector()
	pass := res("happy", StatusPass)
	pass.Transcription = StringPtr("What a wonderful morning.")
	c.Add(pass)

	fail := res("sad", StatusFail)
	fail.Transcription = StringPtr("(sad) The rain has not stopped.")
	fail.Error = StringPtr("Tag leaked: '(sad) The rain has not stopped.'")
	c.Add(fail)

	errored := res("whispering", StatusError)
	errored.Error = StringPtr("fishaudio: tts status 500: internal error")
	c.Add(errored)

	info := &RunInfo{
		ID:        "benchmark_20260102-150405",
		Timestamp: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		Duration:  3 * time.Second,
		Cases:     3,
		Workers:   4,
	}
	require.NoError(t, WriteJSON(c, info, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Run     *RunInfo          `json:"run"`
		Results []BenchmarkResult `json:"results"`
		Summary *Summary          `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	require.NotNil(t, doc.Run)
	assert.Equal(t, "benchmark_20260102-150405", doc.Run.ID)
	assert.Equal(t, 4, doc.Run.Workers)

	require.Len(t, doc.Results, 3)
	assert.Equal(t, StatusPass, doc.Results[0].Status)
	require.NotNil(t, doc.Results[0].Transcription)
	assert.Nil(t, doc.Results[0].Error, "passing results carry no error")
	require.NotNil(t, doc.Results[1].Error)
	assert.Contains(t, *doc.Results[1].Error, "Tag leaked")
	assert.Equal(t, StatusError, doc.Results[2].Status)
	assert.Nil(t, doc.Results[2].Transcription, "errored results carry no transcription")
	require.NotNil(t, doc.Results[2].Error)

	require.NotNil(t, doc.Summary)
	assert.Equal(t, 3, doc.Summary.TotalTests)
	assert.Equal(t, 1, doc.Summary.ErrorCount)
	assert.InDelta(t, 33.33, doc.Summary.SuccessRate, 1e-9)

	// Optional fields serialize as null, not as empty strings.
	assert.Contains(t, string(data), `"transcription": null`)
	assert.Contains(t, string(data), `"error": null`)
}

func TestWriteJSONEmptyCollector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmark_results.json")
	require.NoError(t, WriteJSON(NewCollector(), nil, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.JSONEq(t, `[]`, string(doc["results"]))
	assert.JSONEq(t, `{}`, string(doc["summary"]))
	_, hasRun := doc["run"]
	assert.False(t, hasRun, "run metadata is omitted when absent")
}

func TestWriteJSONOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmark_results.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	c := NewCollector()
	c.Add(res("happy", StatusPass))
	require.NoError(t, WriteJSON(c, nil, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
}

func TestReadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmark_results.json")

	c := NewCollector()
	addCounts(c, "happy", 2, 1, 0)
	info := &RunInfo{ID: "run-1", Cases: 3, Workers: 2}
	require.NoError(t, WriteJSON(c, info, path))

	loaded, gotInfo, err := ReadJSON(path)
	require.NoError(t, err)
	require.NotNil(t, gotInfo)
	assert.Equal(t, "run-1", gotInfo.ID)
	assert.Equal(t, c.Results(), loaded.Results())
	assert.Equal(t, c.Summary(), loaded.Summary())
}

func TestReadJSONMissingFile(t *testing.T) {
	_, _, err := ReadJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestWriteMarkdownEmptyCollectorIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")
	require.NoError(t, WriteMarkdown(NewCollector(), path))
	assert.NoFileExists(t, path)
}

func TestWriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "summary.md")

	c := NewCollector()
	addCounts(c, "happy", 2, 0, 0)
	addCounts(c, "sad", 0, 1, 1)
	require.NoError(t, WriteMarkdown(c, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "# Emotion Benchmark Summary\n"))
	assert.Contains(t, out, "**Total Tests:** 4")
	assert.Contains(t, out, "**Pass:** 2 | **Fail:** 1 | **Error:** 1")
	assert.Contains(t, out, "**Success Rate:** 50.00%")
	assert.Contains(t, out, "## Top 5 Best Performing Emotions")
	assert.Contains(t, out, "## Top 5 Worst Performing Emotions")
	assert.Contains(t, out, "## Results by Emotion")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "0.0%")
	assert.Contains(t, out, "basic_emotions")

	// The breakdown is sorted by success rate, best first.
	section := out[strings.Index(out, "## Results by Emotion"):]
	assert.Less(t, strings.Index(section, "| happy"), strings.Index(section, "| sad"))
}

func TestMarkdownTableShape(t *testing.T) {
	out := markdownTable(
		[]string{"Emotion", "Success Rate"},
		[][]string{{"happy", "100.0%"}, {"melancholic", "0.0%"}},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "| Emotion     | Success Rate |", lines[0])
	assert.Equal(t, "|-------------|--------------|", lines[1])
	assert.Equal(t, "| happy       | 100.0%       |", lines[2])
	assert.Equal(t, "| melancholic | 0.0%         |", lines[3])
}
