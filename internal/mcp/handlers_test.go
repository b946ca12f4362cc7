package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/emotion-bench/internal/results"
	"github.com/giantswarm/emotion-bench/internal/server"
	"github.com/giantswarm/emotion-bench/internal/testutil"
)

func TestHandleListEmotions(t *testing.T) {
	sc := &server.ServerContext{
		CatalogPath: "",
	}

	result, err := handleListEmotions(context.Background(), mcp.CallToolRequest{}, sc)
	require.NoError(t, err)
	require.NotNil(t, result)

	content := result.Content[0].(mcp.TextContent)
	assert.Contains(t, content.Text, "happy")

	// Verify it's valid JSON with the expected fields.
	var emotions []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(content.Text), &emotions))
	assert.Len(t, emotions, 20)

	e := emotions[0]
	assert.Contains(t, e, "tag")
	assert.Contains(t, e, "category")
	assert.Contains(t, e, "phrase_count")
}

func TestHandleListEmotionsCategoryFilter(t *testing.T) {
	sc := &server.ServerContext{}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"category": "basic_emotions",
	}

	result, err := handleListEmotions(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	var emotions []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(content.Text), &emotions))
	require.NotEmpty(t, emotions)
	for _, e := range emotions {
		assert.Equal(t, "basic_emotions", e["category"])
	}
}

func TestHandleRunBenchmarkNoClient(t *testing.T) {
	sc := &server.ServerContext{}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{}

	result, err := handleRunBenchmark(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	assert.Contains(t, content.Text, "speech client is not configured")
}

func TestHandleRunBenchmark(t *testing.T) {
	catalogPath := filepath.Join(t.TempDir(), "emotions.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`
basic_emotions:
  happy:
    - "The sun is out and the coffee is warm."
    - "Everything went right this morning."
`), 0o644))

	outputDir := filepath.Join(t.TempDir(), "output")
	sc := &server.ServerContext{
		SpeechClient: &testutil.MockSpeechClient{DefaultTranscription: "clean text"},
		CatalogPath:  catalogPath,
		OutputDir:    outputDir,
	}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"no_reference": true,
	}

	result, err := handleRunBenchmark(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(content.Text), &response))

	assert.Contains(t, response["run_id"], "benchmark_")
	assert.EqualValues(t, 2, response["cases"])
	summary := response["summary"].(map[string]interface{})
	assert.EqualValues(t, 2, summary["total_tests"])
	assert.EqualValues(t, 2, summary["pass_count"])

	assert.FileExists(t, filepath.Join(outputDir, "benchmark_results.json"))
	assert.FileExists(t, filepath.Join(outputDir, "summary.md"))
}

func TestHandleRunBenchmarkUnknownEmotion(t *testing.T) {
	sc := &server.ServerContext{
		SpeechClient: &testutil.MockSpeechClient{},
		OutputDir:    filepath.Join(t.TempDir(), "output"),
	}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"emotion":      "nope",
		"no_reference": true,
	}

	result, err := handleRunBenchmark(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	assert.Contains(t, content.Text, "unknown emotion")
}

func TestHandleEstimateCost(t *testing.T) {
	sc := &server.ServerContext{}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{}

	result, err := handleEstimateCost(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	var report map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(content.Text), &report))

	// Embedded catalog: 100 phrases, 3 default reference voices, 1 run.
	assert.EqualValues(t, 20, report["emotions"])
	assert.EqualValues(t, 100, report["base_cases"])
	assert.EqualValues(t, 300, report["total_tts_calls"])
	assert.EqualValues(t, 15, report["cost_per_million_bytes"])
	assert.Greater(t, report["estimated_cost_usd"], 0.0)

	voices := report["voices_tested"].([]interface{})
	assert.Len(t, voices, 3)
}

func TestHandleEstimateCostNoReference(t *testing.T) {
	sc := &server.ServerContext{}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"no_reference": true,
		"runs":         float64(2),
	}

	result, err := handleEstimateCost(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	var report map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(content.Text), &report))

	assert.EqualValues(t, 1, report["voices"])
	assert.EqualValues(t, 2, report["runs_per_phrase"])
	assert.Equal(t, []interface{}{"default"}, report["voices_tested"])
}

func TestHandleGetResultsEmptyDir(t *testing.T) {
	sc := &server.ServerContext{
		OutputDir: t.TempDir(),
	}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{}

	result, err := handleGetResults(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	assert.Equal(t, "[]", content.Text)
}

func TestHandleGetResultsNonexistentDir(t *testing.T) {
	sc := &server.ServerContext{
		OutputDir: "/nonexistent/directory",
	}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{}

	result, err := handleGetResults(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	assert.Equal(t, "[]", content.Text)
}

func writeResultsFixture(t *testing.T, path, runID string) {
	t.Helper()
	col := results.NewCollector()
	col.Add(results.BenchmarkResult{
		Emotion:   "happy",
		Voice:     "default",
		PhraseIdx: 1,
		Phrase:    "a phrase",
		RunNumber: 1,
		Category:  "basic_emotions",
		Status:    results.StatusPass,
	})
	require.NoError(t, results.WriteJSON(col, &results.RunInfo{ID: runID, Cases: 1, Workers: 1}, path))
}

func TestHandleGetResultsListing(t *testing.T) {
	outputDir := t.TempDir()
	writeResultsFixture(t, filepath.Join(outputDir, "benchmark_results.json"), "benchmark_current")
	writeResultsFixture(t, filepath.Join(outputDir, "benchmark_20260101-120000", "benchmark_results.json"), "benchmark_20260101-120000")

	sc := &server.ServerContext{OutputDir: outputDir}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{}

	result, err := handleGetResults(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	var runs []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(content.Text), &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, "benchmark_current", runs[0]["run_id"])
	assert.Equal(t, "benchmark_20260101-120000", runs[1]["run_id"])
	assert.Contains(t, runs[0], "summary")
}

func TestHandleGetResultsSpecificRun(t *testing.T) {
	outputDir := t.TempDir()
	writeResultsFixture(t, filepath.Join(outputDir, "benchmark_20260101-120000", "benchmark_results.json"), "benchmark_20260101-120000")

	sc := &server.ServerContext{OutputDir: outputDir}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"run_id": "benchmark_20260101-120000",
	}

	result, err := handleGetResults(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	assert.Contains(t, content.Text, "total_tests")
	assert.Contains(t, content.Text, "benchmark_20260101-120000")
}

func TestHandleGetResultsLatestRunByID(t *testing.T) {
	outputDir := t.TempDir()
	writeResultsFixture(t, filepath.Join(outputDir, "benchmark_results.json"), "benchmark_20260203-140000")

	sc := &server.ServerContext{OutputDir: outputDir}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"run_id": "benchmark_20260203-140000",
	}

	result, err := handleGetResults(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	assert.Contains(t, content.Text, "total_tests")
}

func TestHandleGetResultsUnknownRun(t *testing.T) {
	sc := &server.ServerContext{OutputDir: t.TempDir()}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"run_id": "benchmark_19990101-000000",
	}

	result, err := handleGetResults(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	assert.Contains(t, content.Text, "not found")
}

func TestHandleGetResultsRejectsTraversal(t *testing.T) {
	sc := &server.ServerContext{OutputDir: t.TempDir()}

	for _, runID := range []string{"..", "../secrets", "a/b", "."} {
		request := mcp.CallToolRequest{}
		request.Params.Arguments = map[string]interface{}{
			"run_id": runID,
		}

		result, err := handleGetResults(context.Background(), request, sc)
		require.NoError(t, err)

		content := result.Content[0].(mcp.TextContent)
		assert.Contains(t, content.Text, "invalid run_id", "run_id %q must be rejected", runID)
	}
}
