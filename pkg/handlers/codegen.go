package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/apperrors"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/jsonutil"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/logging"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/services"
)

// maxRequestBodyBytes bounds generator request bodies.
const maxRequestBodyBytes = 1 << 20

// ============================================================================
// Request/Response Types
// ============================================================================

// GenerateDAXResponse for POST /api/generate-dax
type GenerateDAXResponse struct {
	DAX string `json:"dax"`
}

// GenerateTMDLResponse for POST /api/generate-tmdl.
// Skipped lists requested keys that matched no schema.
type GenerateTMDLResponse struct {
	TMDL    string   `json:"tmdl"`
	Skipped []string `json:"skipped,omitempty"`
}

// GenerateContextResponse for POST /api/generate-context
type GenerateContextResponse struct {
	Context      string `json:"context"`
	SystemPrompt string `json:"system_prompt"`
}

// ============================================================================
// Handler
// ============================================================================

// CodegenHandler serves the DAX, TMDL and semantic model context generators.
type CodegenHandler struct {
	codegenService services.CodegenService
	logger         *zap.Logger
}

// NewCodegenHandler creates a new code generation handler.
func NewCodegenHandler(codegenService services.CodegenService, logger *zap.Logger) *CodegenHandler {
	return &CodegenHandler{
		codegenService: codegenService,
		logger:         logger,
	}
}

// RegisterRoutes registers the codegen handler's routes on the given mux.
func (h *CodegenHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/generate-dax", h.GenerateDAX)
	mux.HandleFunc("POST /api/generate-tmdl", h.GenerateTMDL)
	mux.HandleFunc("POST /api/generate-context", h.GenerateContext)
}

// GenerateDAX handles POST /api/generate-dax with body {"schema": key}.
// A missing or non-string key is reported as an invalid schema.
func (h *CodegenHandler) GenerateDAX(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeBody(w, r)
	if !ok {
		return
	}

	key := jsonutil.FlexibleStringValue(body["schema"])
	dax, err := h.codegenService.GenerateDAX(r.Context(), key)
	if err != nil {
		h.writeServiceError(w, err, key)
		return
	}

	if err := WriteJSON(w, http.StatusOK, GenerateDAXResponse{DAX: dax}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GenerateTMDL handles POST /api/generate-tmdl with body {"schemas": [key, ...]}.
// Unknown keys never fail the request.
func (h *CodegenHandler) GenerateTMDL(w http.ResponseWriter, r *http.Request) {
	keys, ok := h.decodeSchemaKeys(w, r)
	if !ok {
		return
	}

	result := h.codegenService.GenerateTMDL(r.Context(), keys)

	response := GenerateTMDLResponse{
		TMDL:    result.TMDL,
		Skipped: result.Skipped,
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GenerateContext handles POST /api/generate-context with body {"schemas": [key, ...]}.
func (h *CodegenHandler) GenerateContext(w http.ResponseWriter, r *http.Request) {
	keys, ok := h.decodeSchemaKeys(w, r)
	if !ok {
		return
	}

	result, err := h.codegenService.GenerateModelContext(r.Context(), keys)
	if err != nil {
		h.writeServiceError(w, err, keys...)
		return
	}

	response := GenerateContextResponse{
		Context:      result.Context,
		SystemPrompt: result.SystemPrompt,
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// decodeBody parses the request body as a JSON object. On failure it writes a
// 400 response and returns false.
func (h *CodegenHandler) decodeBody(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, bool) {
	var body map[string]json.RawMessage
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		h.logger.Debug("Rejected malformed request body", zap.String("path", r.URL.Path), zap.Error(err))
		h.writeBadRequest(w)
		return nil, false
	}
	return body, true
}

// decodeSchemaKeys reads the "schemas" array from the request body.
// A missing array is an empty selection; a non-array value is a bad request.
func (h *CodegenHandler) decodeSchemaKeys(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	body, ok := h.decodeBody(w, r)
	if !ok {
		return nil, false
	}

	keys, err := jsonutil.FlexibleStringSlice(body["schemas"])
	if err != nil {
		h.logger.Debug("Rejected schemas field", zap.Error(err))
		h.writeBadRequest(w)
		return nil, false
	}
	return keys, true
}

func (h *CodegenHandler) writeServiceError(w http.ResponseWriter, err error, keys ...string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidArgument):
		h.logger.Debug("Invalid schema requested",
			zap.Strings("schemas", logging.TruncateAllForLog(keys)))
		if err := ErrorResponse(w, http.StatusBadRequest, CodeInvalidSchema, msgInvalidSchema); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	case errors.Is(err, apperrors.ErrBadRequest):
		h.writeBadRequest(w)
	default:
		h.logger.Error("Code generation failed", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, CodeInternalError, msgInternal); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}

func (h *CodegenHandler) writeBadRequest(w http.ResponseWriter) {
	if err := ErrorResponse(w, http.StatusBadRequest, CodeBadRequest, msgBadRequest); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
