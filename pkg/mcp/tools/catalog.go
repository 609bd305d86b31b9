// Package tools provides the MCP tools that expose the ACC schema catalog
// and code generators.
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
	"github.com/ekaya-inc/acc-semantic-guide/pkg/models"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/services"
)

// CatalogToolDeps contains dependencies for catalog lookup tools.
type CatalogToolDeps struct {
	CatalogService services.CatalogService
	Logger         *zap.Logger
}

// RegisterCatalogTools registers the read-only catalog lookup tools.
func RegisterCatalogTools(s *server.MCPServer, deps *CatalogToolDeps) {
	registerListSchemasTool(s, deps)
	registerGetSchemaTool(s, deps)
	registerListTemplatesTool(s, deps)
	registerListPlatformsTool(s, deps)
}

// schemaSummary is the lightweight list_schemas entry.
type schemaSummary struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Tables       []string `json:"tables"`
	MeasureCount int      `json:"measure_count"`
}

func readOnlyAnnotations() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	}
}

func registerListSchemasTool(s *server.MCPServer, deps *CatalogToolDeps) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription(
			"List the ACC data schemas available for Fabric semantic models. " +
				"Returns each schema's key, name, description, table names and measure count. " +
				"Use get_schema for full column and measure definitions.",
		),
	}, readOnlyAnnotations()...)
	tool := mcp.NewTool("list_schemas", opts...)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		schemas := deps.CatalogService.ListSchemas(ctx)

		result := struct {
			Schemas []schemaSummary `json:"schemas"`
			Count   int             `json:"count"`
		}{
			Schemas: make([]schemaSummary, 0, len(schemas)),
		}
		for _, key := range deps.CatalogService.SchemaKeys(ctx) {
			schema := schemas[key]
			tables := make([]string, 0, len(schema.Tables))
			for _, table := range schema.Tables {
				tables = append(tables, table.Name)
			}
			result.Schemas = append(result.Schemas, schemaSummary{
				Key:          key,
				Name:         schema.Name,
				Description:  schema.Description,
				Tables:       tables,
				MeasureCount: len(schema.SemanticModel.Measures),
			})
		}
		result.Count = len(result.Schemas)

		return jsonResult(result)
	})
}

func registerGetSchemaTool(s *server.MCPServer, deps *CatalogToolDeps) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription(
			"Get the full definition of one ACC data schema: tables, typed columns, " +
				"DAX measures and hierarchies.",
		),
		mcp.WithString(
			"schema_key",
			mcp.Required(),
			mcp.Description("Schema key from list_schemas, e.g. 'cost'"),
		),
	}, readOnlyAnnotations()...)
	tool := mcp.NewTool("get_schema", opts...)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := req.RequireString("schema_key")
		if err != nil {
			return NewErrorResult("invalid_parameters", "schema_key is required"), nil
		}
		schema, err := deps.CatalogService.GetSchema(ctx, key)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				deps.Logger.Debug("Schema not found", zap.String("schema", logging.TruncateForLog(key)))
				return NewErrorResultWithDetails("schema_not_found", "Schema not found",
					map[string]any{"valid_keys": deps.CatalogService.SchemaKeys(ctx)}), nil
			}
			return nil, fmt.Errorf("failed to get schema: %w", err)
		}

		return jsonResult(schema)
	})
}

func registerListTemplatesTool(s *server.MCPServer, deps *CatalogToolDeps) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("List the Microsoft Fabric semantic model templates in catalog order, with complexity and use case."),
	}, readOnlyAnnotations()...)
	tool := mcp.NewTool("list_templates", opts...)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		templates := deps.CatalogService.ListTemplates(ctx)
		keys := deps.CatalogService.TemplateKeys(ctx)

		result := struct {
			Templates []models.Template `json:"templates"`
			Count     int               `json:"count"`
		}{
			Templates: make([]models.Template, 0, len(keys)),
		}
		for _, key := range keys {
			result.Templates = append(result.Templates, templates[key])
		}
		result.Count = len(result.Templates)

		return jsonResult(result)
	})
}

func registerListPlatformsTool(s *server.MCPServer, deps *CatalogToolDeps) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("List the AI platforms that can query a Fabric semantic model in catalog order, with pros, cons and integration level."),
	}, readOnlyAnnotations()...)
	tool := mcp.NewTool("list_platforms", opts...)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		platforms := deps.CatalogService.ListPlatforms(ctx)
		keys := deps.CatalogService.PlatformKeys(ctx)

		result := struct {
			Platforms []models.Platform `json:"platforms"`
			Count     int               `json:"count"`
		}{
			Platforms: make([]models.Platform, 0, len(keys)),
		}
		for _, key := range keys {
			result.Platforms = append(result.Platforms, platforms[key])
		}
		result.Count = len(result.Platforms)

		return jsonResult(result)
	})
}
