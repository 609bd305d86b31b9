package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/catalog"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/services"
)

// newCatalogServer registers every catalog and codegen tool against the
// embedded catalog.
func newCatalogServer(t *testing.T) *server.MCPServer {
	t.Helper()

	c := catalog.Default()
	logger := zap.NewNop()
	catalogService := services.NewCatalogService(c, logger)
	codegenService := services.NewCodegenService(c, logger)

	mcpServer := server.NewMCPServer("test", "1.0.0", server.WithToolCapabilities(true))
	RegisterCatalogTools(mcpServer, &CatalogToolDeps{CatalogService: catalogService, Logger: logger})
	RegisterCodegenTools(mcpServer, &CodegenToolDeps{
		CodegenService: codegenService,
		CatalogService: catalogService,
		Logger:         logger,
	})
	return mcpServer
}

type toolCallResponse struct {
	Result struct {
		IsError bool `json:"isError"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// callTool invokes a tool through the JSON-RPC entry point and returns the
// text payload and the tool-level error flag.
func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) (string, bool) {
	t.Helper()

	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]any{
			"name":      name,
			"arguments": args,
		},
	}
	reqBytes, err := json.Marshal(request)
	require.NoError(t, err)

	result := s.HandleMessage(context.Background(), reqBytes)
	resultBytes, err := json.Marshal(result)
	require.NoError(t, err)

	var response toolCallResponse
	require.NoError(t, json.Unmarshal(resultBytes, &response))
	require.Nil(t, response.Error, "unexpected JSON-RPC error")
	require.NotEmpty(t, response.Result.Content)
	require.Equal(t, "text", response.Result.Content[0].Type)

	return response.Result.Content[0].Text, response.Result.IsError
}

type listedTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema struct {
		Required []string `json:"required"`
	} `json:"inputSchema"`
	Annotations struct {
		ReadOnlyHint *bool `json:"readOnlyHint"`
	} `json:"annotations"`
}

// listTools returns the registered tools keyed by name.
func listTools(t *testing.T, s *server.MCPServer) map[string]listedTool {
	t.Helper()

	result := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","method":"tools/list","id":1}`))
	resultBytes, err := json.Marshal(result)
	require.NoError(t, err)

	var response struct {
		Result struct {
			Tools []listedTool `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(resultBytes, &response))

	tools := make(map[string]listedTool, len(response.Result.Tools))
	for _, tool := range response.Result.Tools {
		tools[tool.Name] = tool
	}
	return tools
}
