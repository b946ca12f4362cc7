package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/emotion-bench/internal/results"
	"github.com/giantswarm/emotion-bench/internal/server"
)

// resultsFileName is the artifact a benchmark run writes its results to.
const resultsFileName = "benchmark_results.json"

func handleGetResults(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	runID, _ := args["run_id"].(string)

	if runID != "" {
		return getSpecificRun(sc.OutputDir, runID)
	}
	return listRuns(sc.OutputDir)
}

// listRuns collects listing entries for the latest run (written directly
// into the output directory) and for any preserved run subdirectories.
func listRuns(outputDir string) (*mcp.CallToolResult, error) {
	var runs []map[string]interface{}

	if entry := loadRunEntry(filepath.Join(outputDir, resultsFileName)); entry != nil {
		runs = append(runs, entry)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil && !os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read results directory: %v", err)), nil
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if entry := loadRunEntry(filepath.Join(outputDir, e.Name(), resultsFileName)); entry != nil {
			runs = append(runs, entry)
		}
	}

	if len(runs) == 0 {
		return mcp.NewToolResultText("[]"), nil
	}

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal runs: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func getSpecificRun(outputDir, runID string) (*mcp.CallToolResult, error) {
	runPath, err := resolveRunPath(outputDir, runID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid run_id: %v", err)), nil
	}

	path := filepath.Join(runPath, resultsFileName)
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		// The latest run writes its results directly into the output
		// directory; match it by its recorded run ID.
		if doc := matchLatestRun(outputDir, runID); doc != nil {
			return marshalRunDocument(doc)
		}
		return mcp.NewToolResultError(fmt.Sprintf("run %q not found: %v", runID, readErr)), nil
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse results file: %v", err)), nil
	}
	return marshalRunDocument(doc)
}

func matchLatestRun(outputDir, runID string) map[string]interface{} {
	data, err := os.ReadFile(filepath.Join(outputDir, resultsFileName))
	if err != nil {
		return nil
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	run, _ := doc["run"].(map[string]interface{})
	if run == nil {
		return nil
	}
	if id, _ := run["id"].(string); id != runID {
		return nil
	}
	return doc
}

func marshalRunDocument(doc map[string]interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// loadRunEntry condenses a results file into a listing entry: the run
// metadata and summary without the full result list.
func loadRunEntry(path string) map[string]interface{} {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var doc struct {
		Run     *results.RunInfo  `json:"run"`
		Results []json.RawMessage `json:"results"`
		Summary json.RawMessage   `json:"summary"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}

	entry := map[string]interface{}{
		"results_file": path,
		"results":      len(doc.Results),
	}
	if doc.Run != nil {
		entry["run_id"] = doc.Run.ID
		entry["timestamp"] = doc.Run.Timestamp
		entry["duration"] = doc.Run.Duration.String()
		entry["workers"] = doc.Run.Workers
	}
	if len(doc.Summary) > 0 {
		var summary interface{}
		if json.Unmarshal(doc.Summary, &summary) == nil {
			entry["summary"] = summary
		}
	}
	return entry
}
