package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/integral/core"
	"github.com/huangsam/integral/internal/contract"
	"github.com/huangsam/integral/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

// requestConfig clones the base config and applies the source arguments.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("financial_path", ""); p != "" {
		cfg.FinancialPath = strings.TrimSpace(p)
	}
	if p := request.GetString("media_path", ""); p != "" {
		cfg.MediaPath = strings.TrimSpace(p)
	}
	if p := request.GetString("reputation_path", ""); p != "" {
		cfg.ReputationPath = strings.TrimSpace(p)
	}
	if k := strings.TrimSpace(request.GetString("key", "")); k != "" {
		cfg.Key = k
	}
	if !cfg.HasSources() {
		return nil, fmt.Errorf("at least one of financial_path, media_path, reputation_path is required")
	}
	return cfg, nil
}

func (h *toolHandler) handleRankCompanies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid ranking parameters: %v", err)), nil
	}

	if err := contract.RevalidateWeights(cfg,
		request.GetFloat("weight_financial", cfg.WeightFinancial),
		request.GetFloat("weight_media", cfg.WeightMedia),
		request.GetFloat("weight_reputation", cfg.WeightReputation),
	); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid ranking parameters: %v", err)), nil
	}
	if l := request.GetInt("limit", 0); l != 0 {
		if l < 0 || l > contract.MaxResultLimit {
			return mcp.NewToolResultError(fmt.Sprintf("invalid ranking parameters: limit must be between 1 and %d", contract.MaxResultLimit)), nil
		}
		cfg.ResultLimit = l
	}

	result, err := core.GetRankResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	output := struct {
		Total    int                           `json:"total"`
		Weights  schema.Weights                `json:"weights"`
		Entities []schema.EnrichedEntityResult `json:"entities"`
	}{
		Total:    result.Total,
		Weights:  result.Weights,
		Entities: schema.EnrichEntities(result.Entities),
	}
	jsonData, _ := json.MarshalIndent(output, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyColumns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid classification parameters: %v", err)), nil
	}

	result, err := core.GetClassification(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("classification failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleMergeTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid merge parameters: %v", err)), nil
	}

	unified, err := core.GetUnifiedTable(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("merge failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(unified, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
