package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/emotion-bench/internal/catalog"
	"github.com/giantswarm/emotion-bench/internal/estimate"
	"github.com/giantswarm/emotion-bench/internal/server"
)

func handleEstimateCost(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	cat, err := catalog.Load(sc.CatalogPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load emotion catalog: %v", err)), nil
	}

	runs := sc.DefaultRuns
	if runs <= 0 {
		runs = 1
	}
	if n, ok := args["runs"].(float64); ok && n > 0 {
		runs = int(n)
	}

	var opts []estimate.Option
	if rate, ok := args["cost_per_million_bytes"].(float64); ok && rate > 0 {
		opts = append(opts, estimate.WithCostPerMillionBytes(rate))
	}

	report := estimate.Estimate(cat, rosterFromArgs(args), runs, opts...)

	labels := make([]string, 0, len(report.Roster))
	for _, ref := range report.Roster {
		labels = append(labels, ref.Label())
	}

	response := struct {
		*estimate.Report
		VoicesTested []string `json:"voices_tested"`
	}{report, labels}

	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal estimate: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
