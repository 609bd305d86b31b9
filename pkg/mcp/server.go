// Package mcp exposes the schema catalog and generators over the Model
// Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/mcp/tools"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/services"
)

// Server wraps the mcp-go MCPServer with the service's tool set.
type Server struct {
	mcp     *server.MCPServer
	name    string
	version string
	logger  *zap.Logger
}

// NewServer creates a new MCP server instance.
func NewServer(name, version string, logger *zap.Logger) *Server {
	mcpServer := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
	)

	return &Server{
		mcp:     mcpServer,
		name:    name,
		version: version,
		logger:  logger,
	}
}

// MCP returns the underlying MCPServer.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// RegisterTools adds the health, catalog and codegen tools.
func (s *Server) RegisterTools(catalogService services.CatalogService, codegenService services.CodegenService) {
	tools.RegisterHealthTool(s.mcp, s.name, s.version)
	tools.RegisterCatalogTools(s.mcp, &tools.CatalogToolDeps{
		CatalogService: catalogService,
		Logger:         s.logger,
	})
	tools.RegisterCodegenTools(s.mcp, &tools.CodegenToolDeps{
		CodegenService: codegenService,
		CatalogService: catalogService,
		Logger:         s.logger,
	})
	s.logger.Debug("Registered MCP tools", zap.String("server", s.name))
}

// NewStreamableHTTPServer creates an HTTP transport server wrapping this MCP server.
// The HTTP mux handles routing to /mcp, so no endpoint path is configured here.
func (s *Server) NewStreamableHTTPServer() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s.mcp,
		server.WithStateLess(true),
	)
}
