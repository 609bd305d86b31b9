package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/apperrors"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/logging"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/services"
)

// CodegenToolDeps contains dependencies for code generation tools.
type CodegenToolDeps struct {
	CodegenService services.CodegenService
	CatalogService services.CatalogService
	Logger         *zap.Logger
}

// RegisterCodegenTools registers the DAX, TMDL and model context generators.
func RegisterCodegenTools(s *server.MCPServer, deps *CodegenToolDeps) {
	registerGenerateDAXTool(s, deps)
	registerGenerateTMDLTool(s, deps)
	registerGetModelContextTool(s, deps)
}

func schemaKeysOption() mcp.ToolOption {
	return mcp.WithArray(
		"schema_keys",
		mcp.Required(),
		mcp.Description("Schema keys from list_schemas, in output order, e.g. ['projects', 'cost']"),
		mcp.Items(map[string]any{"type": "string"}),
	)
}

func registerGenerateDAXTool(s *server.MCPServer, deps *CodegenToolDeps) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription(
			"Generate DAX measure definitions for one ACC schema. " +
				"Each measure is a comment line with its description followed by 'Name = Expression'.",
		),
		mcp.WithString(
			"schema_key",
			mcp.Required(),
			mcp.Description("Schema key from list_schemas, e.g. 'issues'"),
		),
	}, readOnlyAnnotations()...)
	tool := mcp.NewTool("generate_dax", opts...)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := req.RequireString("schema_key")
		if err != nil {
			return NewErrorResult("invalid_parameters", "schema_key is required"), nil
		}
		dax, err := deps.CodegenService.GenerateDAX(ctx, key)
		if err != nil {
			if errors.Is(err, apperrors.ErrInvalidArgument) {
				return deps.invalidSchemaResult(ctx, key), nil
			}
			return nil, fmt.Errorf("failed to generate DAX: %w", err)
		}

		return jsonResult(struct {
			SchemaKey string `json:"schema_key"`
			DAX       string `json:"dax"`
		}{SchemaKey: key, DAX: dax})
	})
}

func registerGenerateTMDLTool(s *server.MCPServer, deps *CodegenToolDeps) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription(
			"Generate a TMDL document describing the tables and columns of the selected ACC schemas. " +
				"Unknown keys are skipped and listed in 'skipped'.",
		),
		schemaKeysOption(),
	}, readOnlyAnnotations()...)
	tool := mcp.NewTool("generate_tmdl", opts...)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keys, err := extractStringSlice(req.GetArguments(), "schema_keys", deps.Logger)
		if err != nil {
			return NewErrorResult("invalid_parameters", err.Error()), nil
		}

		result := deps.CodegenService.GenerateTMDL(ctx, keys)
		return jsonResult(struct {
			TMDL    string   `json:"tmdl"`
			Skipped []string `json:"skipped,omitempty"`
		}{TMDL: result.TMDL, Skipped: result.Skipped})
	})
}

func registerGetModelContextTool(s *server.MCPServer, deps *CodegenToolDeps) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription(
			"Describe the selected ACC schemas as semantic model context for writing DAX queries: " +
				"tables with their business entities, typed columns, measures and hierarchies. " +
				"Also returns a ready-made NL-to-DAX system prompt.",
		),
		schemaKeysOption(),
	}, readOnlyAnnotations()...)
	tool := mcp.NewTool("get_model_context", opts...)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keys, err := extractStringSlice(req.GetArguments(), "schema_keys", deps.Logger)
		if err != nil {
			return NewErrorResult("invalid_parameters", err.Error()), nil
		}

		result, err := deps.CodegenService.GenerateModelContext(ctx, keys)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrBadRequest):
				return NewErrorResult("invalid_parameters", "at least one schema key is required"), nil
			case errors.Is(err, apperrors.ErrInvalidArgument):
				return deps.invalidSchemaResult(ctx, keys...), nil
			}
			return nil, fmt.Errorf("failed to build model context: %w", err)
		}

		return jsonResult(struct {
			Context      string `json:"context"`
			SystemPrompt string `json:"system_prompt"`
		}{Context: result.Context, SystemPrompt: result.SystemPrompt})
	})
}

func (d *CodegenToolDeps) invalidSchemaResult(ctx context.Context, keys ...string) *mcp.CallToolResult {
	d.Logger.Debug("Invalid schema requested", zap.Strings("schemas", logging.TruncateAllForLog(keys)))
	return NewErrorResultWithDetails("invalid_schema", "Invalid schema",
		map[string]any{"valid_keys": d.CatalogService.SchemaKeys(ctx)})
}
