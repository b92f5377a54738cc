package cmd

import (
	"github.com/huangsam/integral/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Integral MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents rank companies, classify
columns and merge tables through standard tools.

Flags set here become the defaults for every tool call; tool arguments
override source paths, key, weights and limit per request.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, historyManager)
	},
}
