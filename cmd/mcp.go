package cmd

import (
	"github.com/mtlpdq/pdqstats/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the pdqstats MCP server",
	Long: `Launch an MCP server over stdio that allows AI agents to query the crime statistics pipeline.

Flags given here become the defaults of every tool call, so the incident file
is usually set once:

  pdqstats mcp --incidents actes-criminels.csv --boundaries limitespdq.geojson`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, runner)
	},
}
