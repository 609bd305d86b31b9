package handlers

import (
	"io/fs"
	"net/http"

	"go.uber.org/zap"
)

// UIHandler serves the setup wizard page and its static assets.
type UIHandler struct {
	dist   fs.FS
	logger *zap.Logger
}

// NewUIHandler creates a handler over a filesystem containing index.html and assets/.
func NewUIHandler(dist fs.FS, logger *zap.Logger) *UIHandler {
	return &UIHandler{dist: dist, logger: logger}
}

// RegisterRoutes registers the wizard page at / and its assets under /assets/.
func (h *UIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.Handle("GET /assets/", http.FileServerFS(h.dist))
}

// Index handles GET / by serving the wizard page.
func (h *UIHandler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(h.dist, "index.html")
	if err != nil {
		h.logger.Error("Failed to read wizard page", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, CodeInternalError, msgInternal); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page); err != nil {
		h.logger.Debug("Failed to write wizard page", zap.Error(err))
	}
}
