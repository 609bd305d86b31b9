package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/apperrors"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/logging"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/services"
)

// CatalogHandler serves the read-only schema, template, platform and
// Azure OpenAI guidance lookups.
type CatalogHandler struct {
	catalogService services.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService services.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the catalog handler's routes on the given mux.
func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/schemas", h.ListSchemas)
	mux.HandleFunc("GET /api/schemas/{key}", h.GetSchema)
	mux.HandleFunc("GET /api/templates", h.ListTemplates)
	mux.HandleFunc("GET /api/ai-platforms", h.ListPlatforms)
	mux.HandleFunc("GET /api/azure-openai-config", h.GetAzureOpenAIConfig)
}

// ListSchemas handles GET /api/schemas
func (h *CatalogHandler) ListSchemas(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.catalogService.ListSchemas(r.Context()))
}

// GetSchema handles GET /api/schemas/{key}
func (h *CatalogHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	schema, err := h.catalogService.GetSchema(r.Context(), key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.logger.Debug("Schema not found", zap.String("schema", logging.TruncateForLog(key)))
			if err := ErrorResponse(w, http.StatusNotFound, CodeNotFound, msgSchemaNotFound); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to get schema", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, CodeInternalError, msgInternal); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	h.write(w, schema)
}

// ListTemplates handles GET /api/templates
func (h *CatalogHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.catalogService.ListTemplates(r.Context()))
}

// ListPlatforms handles GET /api/ai-platforms
func (h *CatalogHandler) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.catalogService.ListPlatforms(r.Context()))
}

// GetAzureOpenAIConfig handles GET /api/azure-openai-config
func (h *CatalogHandler) GetAzureOpenAIConfig(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.catalogService.GetAIConfigGuide(r.Context()))
}

func (h *CatalogHandler) write(w http.ResponseWriter, data any) {
	if err := WriteJSON(w, http.StatusOK, data); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
