package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/codegen"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/services"
)

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCodegenHandler_GenerateDAX(t *testing.T) {
	mux := newTestAPIMux(t)

	t.Run("projects", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-dax", `{"schema":"projects"}`))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp GenerateDAXResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t,
			"// Total number of projects\nProject Count = COUNTROWS(dim_project)\n\n"+
				"// Number of active projects\nActive Projects = CALCULATE(COUNTROWS(dim_project), dim_project[status] = \"Active\")",
			resp.DAX)
	})

	t.Run("cost has seven blocks", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-dax", `{"schema":"cost"}`))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp GenerateDAXResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		blocks := strings.Split(resp.DAX, "\n\n")
		assert.Len(t, blocks, 7)
		for _, block := range blocks {
			assert.True(t, strings.HasPrefix(block, "// "), "block should start with a comment: %q", block)
		}
	})

	t.Run("unknown schema", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-dax", `{"schema":"nonexistent"}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeError(t, rec)
		assert.Equal(t, "Invalid schema", body["error"])
		assert.Equal(t, CodeInvalidSchema, body["code"])
	})

	t.Run("missing schema field", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-dax", `{}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid schema", decodeError(t, rec)["error"])
	})

	t.Run("surrounding whitespace is not stripped", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-dax", `{"schema":" projects"}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, CodeInvalidSchema, decodeError(t, rec)["code"])
	})

	t.Run("non-string schema behaves as unknown", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-dax", `{"schema":42}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid schema", decodeError(t, rec)["error"])
	})

	for name, body := range map[string]string{
		"empty body":     "",
		"malformed JSON": `{"schema":`,
		"array body":     `["projects"]`,
		"null body":      `null`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := serve(mux, postJSON("/api/generate-dax", body))
			require.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decodeError(t, rec)
			assert.Equal(t, "Bad request", resp["error"])
			assert.Equal(t, CodeBadRequest, resp["code"])
		})
	}
}

func TestCodegenHandler_GenerateTMDL(t *testing.T) {
	mux := newTestAPIMux(t)

	t.Run("empty selection is header only", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-tmdl", `{"schemas":[]}`))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp GenerateTMDLResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, codegen.TMDLHeader, resp.TMDL)
		assert.NotContains(t, rec.Body.String(), "skipped")
	})

	t.Run("missing schemas field is an empty selection", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-tmdl", `{}`))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp GenerateTMDLResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, codegen.TMDLHeader, resp.TMDL)
	})

	t.Run("unknown keys are skipped", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-tmdl", `{"schemas":["nonexistent","projects"]}`))
		require.Equal(t, http.StatusOK, rec.Code)

		var withUnknown GenerateTMDLResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &withUnknown))

		rec = serve(mux, postJSON("/api/generate-tmdl", `{"schemas":["projects"]}`))
		var projectsOnly GenerateTMDLResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &projectsOnly))

		assert.Equal(t, projectsOnly.TMDL, withUnknown.TMDL)
		assert.Equal(t, []string{"nonexistent"}, withUnknown.Skipped)
		assert.Empty(t, projectsOnly.Skipped)
	})

	t.Run("padded key is skipped", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-tmdl", `{"schemas":["projects "]}`))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp GenerateTMDLResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, codegen.TMDLHeader, resp.TMDL)
		assert.Equal(t, []string{"projects "}, resp.Skipped)
	})

	t.Run("table and column layout", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-tmdl", `{"schemas":["projects"]}`))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp GenerateTMDLResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.TMDL, "\n    table dim_project\n        description: Project dimension table\n")
		assert.Contains(t, resp.TMDL, "        column start_date\n            dataType: date\n")
		assert.Equal(t, 11, strings.Count(resp.TMDL, "        column "))
	})

	t.Run("non-array schemas is a bad request", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-tmdl", `{"schemas":"projects"}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Bad request", decodeError(t, rec)["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-tmdl", `not json`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCodegenHandler_GenerateContext(t *testing.T) {
	mux := newTestAPIMux(t)

	t.Run("selected schemas", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-context", `{"schemas":["projects","cost"]}`))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp GenerateContextResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp.Context, "# ACC Semantic Model"))
		assert.Less(t, strings.Index(resp.Context, "## Projects"), strings.Index(resp.Context, "## Cost Management"))
		assert.Contains(t, resp.SystemPrompt, resp.Context)
	})

	t.Run("empty selection", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-context", `{"schemas":[]}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, CodeBadRequest, decodeError(t, rec)["code"])
	})

	t.Run("unknown schema", func(t *testing.T) {
		rec := serve(mux, postJSON("/api/generate-context", `{"schemas":["projects","nope"]}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid schema", decodeError(t, rec)["error"])
	})
}

// failingCodegenService returns an unclassified error from every strict method.
type failingCodegenService struct{}

func (failingCodegenService) GenerateDAX(ctx context.Context, schemaKey string) (string, error) {
	return "", errors.New("boom")
}

func (failingCodegenService) GenerateTMDL(ctx context.Context, schemaKeys []string) services.TMDLResult {
	return services.TMDLResult{}
}

func (failingCodegenService) GenerateModelContext(ctx context.Context, schemaKeys []string) (services.ModelContextResult, error) {
	return services.ModelContextResult{}, errors.New("boom")
}

func TestCodegenHandler_UnexpectedServiceError(t *testing.T) {
	mux := http.NewServeMux()
	NewCodegenHandler(failingCodegenService{}, zap.NewNop()).RegisterRoutes(mux)

	rec := serve(mux, postJSON("/api/generate-dax", `{"schema":"projects"}`))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, CodeInternalError, decodeError(t, rec)["code"])
}
