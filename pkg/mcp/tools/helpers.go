package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// extractArrayParam returns the named argument as a JSON array.
// Some MCP clients send arrays as stringified JSON ("[\"cost\"]"); those are
// parsed and a warning is logged. Returns nil, nil when the key is absent.
func extractArrayParam(args map[string]any, key string, logger *zap.Logger) ([]any, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}

	switch v := raw.(type) {
	case []any:
		return v, nil
	case string:
		var parsed []any
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			return nil, fmt.Errorf("parameter %q is a string that could not be parsed as an array; send a native JSON array", key)
		}
		if parsed == nil {
			parsed = []any{}
		}
		if logger != nil {
			logger.Warn("Parsed array parameter from stringified JSON", zap.String("param", key))
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("parameter %q must be an array, got %T", key, raw)
	}
}

// extractStringSlice returns the named argument as a string slice.
// Every element must be a string; values are passed through unchanged.
func extractStringSlice(args map[string]any, key string, logger *zap.Logger) ([]string, error) {
	items, err := extractArrayParam(args, key, logger)
	if err != nil || items == nil {
		return nil, err
	}

	values := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q element %d must be a string, got %T", key, i, item)
		}
		values = append(values, s)
	}
	return values, nil
}

// jsonResult marshals v into a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
