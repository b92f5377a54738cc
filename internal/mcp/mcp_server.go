// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/integral/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// sourceOptions are the arguments shared by every tool that loads sources.
func sourceOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("financial_path", mcp.Description("Path to the financial CSV/XLSX source (append #Sheet for a named sheet).")),
		mcp.WithString("media_path", mcp.Description("Path to the media CSV/XLSX source.")),
		mcp.WithString("reputation_path", mcp.Description("Path to the reputation CSV/XLSX source.")),
		mcp.WithString("key", mcp.Description("Entity key column present in every source. Defaults to 'company'.")),
	}
}

// NewMCPServer initializes and configures the Integral MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Integral Rating Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: rank_companies ---
	rankOptions := append([]mcp.ToolOption{
		mcp.WithDescription("Merge the sources on the key column and rank companies by composite Integral score (0-100)."),
	}, sourceOptions()...)
	rankOptions = append(rankOptions,
		mcp.WithNumber("weight_financial", mcp.Description("Financial group weight in [0,1]. Weights are rescaled to sum to 1.")),
		mcp.WithNumber("weight_media", mcp.Description("Media group weight in [0,1].")),
		mcp.WithNumber("weight_reputation", mcp.Description("Reputation group weight in [0,1].")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	)
	s.AddTool(mcp.NewTool("rank_companies", rankOptions...), h.handleRankCompanies)

	// --- 2. Tool: classify_columns ---
	classifyOptions := append([]mcp.ToolOption{
		mcp.WithDescription("Show which unified columns feed the financial, media and reputation scores."),
	}, sourceOptions()...)
	s.AddTool(mcp.NewTool("classify_columns", classifyOptions...), h.handleClassifyColumns)

	// --- 3. Tool: merge_tables ---
	mergeOptions := append([]mcp.ToolOption{
		mcp.WithDescription("Full outer join of the sources on the key column, returned as a unified table."),
	}, sourceOptions()...)
	s.AddTool(mcp.NewTool("merge_tables", mergeOptions...), h.handleMergeTables)

	return s
}

// StartMCPServer starts the Integral MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
