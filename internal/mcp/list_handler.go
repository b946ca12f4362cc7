package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/emotion-bench/internal/catalog"
	"github.com/giantswarm/emotion-bench/internal/server"
)

func registerCatalogTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// list_emotions
	listTool := mcp.NewTool("list_emotions",
		mcp.WithDescription("List the emotion tags in the benchmark catalog with their category and phrase count"),
		mcp.WithString("category",
			mcp.Description("Only list emotions of this category (e.g. 'basic_emotions')"),
		),
	)
	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListEmotions(ctx, request, sc)
	})

	return nil
}

func handleListEmotions(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	category, _ := args["category"].(string)

	cat, err := catalog.Load(sc.CatalogPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load emotion catalog: %v", err)), nil
	}

	type emotionInfo struct {
		Tag         string `json:"tag"`
		Category    string `json:"category"`
		PhraseCount int    `json:"phrase_count"`
	}

	var emotions []emotionInfo
	for _, e := range cat.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		emotions = append(emotions, emotionInfo{
			Tag:         e.Tag,
			Category:    e.Category,
			PhraseCount: len(e.Phrases),
		})
	}

	if len(emotions) == 0 {
		return mcp.NewToolResultText("[]"), nil
	}

	data, err := json.MarshalIndent(emotions, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal emotions: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
