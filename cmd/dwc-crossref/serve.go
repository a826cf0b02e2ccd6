// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/lexicons-bio/dwc-crossref/internal/tool"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the cross-reference tools over MCP stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		server := mcp.NewServer(&mcp.Implementation{
			Name:    "dwc-crossref",
			Version: "0.1.0",
		}, nil)
		mcp.AddTool(server, tool.MetadataCrossrefLexicons, tool.CrossrefLexicons)
		return server.Run(cmd.Context(), &mcp.StdioTransport{})
	},
}
