// Package server wires the odoo backend client and the tool catalog into an
// MCP server servable over stdio or streamable HTTP.
package server

import (
	"context"

	"github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"
	mcpserver "github.com/viant/mcp/server"

	"github.com/viant/mcp-odoo/toolset"
)

const (
	serverName    = "mcp-odoo"
	serverVersion = "0.1.0"
)

// New creates an MCP server exposing the odoo tool catalog.
func New(ctx context.Context, tools *toolset.Service) (*mcpserver.Server, error) {
	newHandler := protoserver.WithDefaultHandler(ctx, func(handler *protoserver.DefaultHandler) error {
		return tools.Register(handler)
	})
	return mcpserver.New(
		mcpserver.WithNewHandler(newHandler),
		mcpserver.WithImplementation(schema.Implementation{Name: serverName, Version: serverVersion}),
	)
}
