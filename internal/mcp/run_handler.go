package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/emotion-bench/internal/bench"
	"github.com/giantswarm/emotion-bench/internal/catalog"
	"github.com/giantswarm/emotion-bench/internal/results"
	"github.com/giantswarm/emotion-bench/internal/server"
	"github.com/giantswarm/emotion-bench/internal/voices"
)

func registerBenchmarkTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// run_benchmark
	runTool := mcp.NewTool("run_benchmark",
		mcp.WithDescription("Run the emotion tag leakage benchmark: synthesize every catalog phrase with its emotion tag, transcribe the audio and check whether the tag leaked into the transcription."),
		mcp.WithString("voices",
			mcp.Description("Comma-separated reference voice IDs (default: the built-in roster)"),
		),
		mcp.WithBoolean("no_reference",
			mcp.Description("Use only the provider default voice instead of reference voices"),
		),
		mcp.WithNumber("runs",
			mcp.Description("How often each phrase is rendered per voice (default: 1)"),
		),
		mcp.WithNumber("workers",
			mcp.Description("Concurrent benchmark workers (default: 4)"),
		),
		mcp.WithString("emotion",
			mcp.Description("Restrict the run to a single emotion tag (e.g. 'happy')"),
		),
		mcp.WithString("model",
			mcp.Description("TTS model override (e.g. 's1', 'speech-1.6')"),
		),
	)
	s.AddTool(runTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRunBenchmark(ctx, request, sc)
	})

	// estimate_cost
	estimateTool := mcp.NewTool("estimate_cost",
		mcp.WithDescription("Estimate the TTS cost and statistical confidence of a benchmark run without calling any API"),
		mcp.WithNumber("runs",
			mcp.Description("How often each phrase is rendered per voice (default: 1)"),
		),
		mcp.WithString("voices",
			mcp.Description("Comma-separated reference voice IDs (default: the built-in roster)"),
		),
		mcp.WithBoolean("no_reference",
			mcp.Description("Estimate for the provider default voice only"),
		),
		mcp.WithNumber("cost_per_million_bytes",
			mcp.Description("TTS price in USD per million UTF-8 bytes (default: 15.0)"),
		),
	)
	s.AddTool(estimateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleEstimateCost(ctx, request, sc)
	})

	// get_results
	getResultsTool := mcp.NewTool("get_results",
		mcp.WithDescription("Retrieve results of past benchmark runs"),
		mcp.WithString("run_id",
			mcp.Description("Specific run ID to retrieve (optional, lists all if omitted)"),
		),
	)
	s.AddTool(getResultsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetResults(ctx, request, sc)
	})

	return nil
}

func handleRunBenchmark(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if sc.SpeechClient == nil {
		return mcp.NewToolResultError("speech client is not configured (set FISH_AUDIO_API_KEY or OPENAI_API_KEY)"), nil
	}

	args := request.GetArguments()

	cat, err := catalog.Load(sc.CatalogPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load emotion catalog: %v", err)), nil
	}

	config := bench.Config{Runs: sc.DefaultRuns}
	if runs, ok := args["runs"].(float64); ok && runs > 0 {
		config.Runs = int(runs)
	}
	if workers, ok := args["workers"].(float64); ok && workers > 0 {
		config.Workers = int(workers)
	}
	if emotion, ok := args["emotion"].(string); ok {
		config.Emotion = emotion
	}
	if model, ok := args["model"].(string); ok {
		config.Model = model
	}

	runner := bench.NewRunner(sc.SpeechClient, sc.OutputDir, config)
	col, info, err := runner.Run(ctx, cat, rosterFromArgs(args))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("benchmark run failed: %v", err)), nil
	}

	resultsFile := filepath.Join(sc.OutputDir, "benchmark_results.json")
	if err := results.WriteJSON(col, info, resultsFile); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to write results: %v", err)), nil
	}
	summaryFile := filepath.Join(sc.OutputDir, "summary.md")
	if err := results.WriteMarkdown(col, summaryFile); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to write summary: %v", err)), nil
	}

	response := map[string]interface{}{
		"run_id":       info.ID,
		"duration":     info.Duration.String(),
		"cases":        info.Cases,
		"results_file": resultsFile,
		"summary_file": summaryFile,
		"summary":      col.Summary(),
	}

	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal summary: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// rosterFromArgs resolves the voice roster from the shared voices and
// no_reference tool arguments.
func rosterFromArgs(args map[string]interface{}) []voices.Reference {
	noRef, _ := args["no_reference"].(bool)
	var ids []string
	if list, ok := args["voices"].(string); ok {
		ids = voices.ParseIDs(list)
	}
	return voices.Roster(voices.RosterConfig{NoReference: noRef, IDs: ids})
}
