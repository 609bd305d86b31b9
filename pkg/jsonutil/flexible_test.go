package jsonutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleStringValue(t *testing.T) {
	tests := []struct {
		name  string
		input json.RawMessage
		want  string
	}{
		{"string value", json.RawMessage(`"cost"`), "cost"},
		{"integer value", json.RawMessage(`42`), "42"},
		{"float value", json.RawMessage(`3.14`), "3.14"},
		{"boolean", json.RawMessage(`true`), "true"},
		{"null value", json.RawMessage(`null`), ""},
		{"nil raw message", nil, ""},
		{"object falls back to raw string", json.RawMessage(`{"key":"cost"}`), `{"key":"cost"}`},
		{"array falls back to raw string", json.RawMessage(`["cost"]`), `["cost"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlexibleStringValue(tt.input))
		})
	}
}

func TestFlexibleStringSlice(t *testing.T) {
	t.Run("array of strings", func(t *testing.T) {
		got, err := FlexibleStringSlice(json.RawMessage(`["projects","cost"]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"projects", "cost"}, got)
	})

	t.Run("mixed element types are coerced", func(t *testing.T) {
		got, err := FlexibleStringSlice(json.RawMessage(`["issues", 7, null, false]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"issues", "7", "", "false"}, got)
	})

	t.Run("null and missing yield nil", func(t *testing.T) {
		got, err := FlexibleStringSlice(json.RawMessage(`null`))
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = FlexibleStringSlice(nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("empty array", func(t *testing.T) {
		got, err := FlexibleStringSlice(json.RawMessage(`[]`))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("non-array is an error", func(t *testing.T) {
		_, err := FlexibleStringSlice(json.RawMessage(`"cost"`))
		assert.Error(t, err)
	})
}
