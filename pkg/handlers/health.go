package handlers

import (
	"net/http"
	"runtime"

	"go.uber.org/zap"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/config"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/services"
)

// ServiceName identifies this service in ping responses and MCP metadata.
const ServiceName = "acc-semantic-guide"

// CatalogSummary counts the entries served by the catalog endpoints.
type CatalogSummary struct {
	Schemas   int `json:"schemas"`
	Templates int `json:"templates"`
	Platforms int `json:"platforms"`
}

// PingResponse contains service status, version and catalog information.
type PingResponse struct {
	Status      string         `json:"status"`
	Version     string         `json:"version"`
	Service     string         `json:"service"`
	GoVersion   string         `json:"go_version"`
	Environment string         `json:"environment"`
	MCPEnabled  bool           `json:"mcp_enabled"`
	Catalog     CatalogSummary `json:"catalog"`
}

// HealthHandler handles health check and ping endpoints.
type HealthHandler struct {
	cfg            *config.Config
	catalogService services.CatalogService
	logger         *zap.Logger
}

// NewHealthHandler creates a new HealthHandler with the given configuration.
func NewHealthHandler(cfg *config.Config, catalogService services.CatalogService, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, catalogService: catalogService, logger: logger}
}

// RegisterRoutes registers the health handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ping", h.Ping)
}

// Health handles GET /health requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ping handles GET /ping requests.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := PingResponse{
		Status:      "ok",
		Version:     h.cfg.Version,
		Service:     ServiceName,
		GoVersion:   runtime.Version(),
		Environment: h.cfg.Env,
		MCPEnabled:  h.cfg.MCP.Enabled,
		Catalog: CatalogSummary{
			Schemas:   len(h.catalogService.SchemaKeys(ctx)),
			Templates: len(h.catalogService.ListTemplates(ctx)),
			Platforms: len(h.catalogService.ListPlatforms(ctx)),
		},
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode ping response", zap.Error(err))
	}
}
