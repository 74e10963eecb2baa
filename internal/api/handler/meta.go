package handler

import (
	"net/http"

	"github.com/mcoot/fatetable/internal/api/response"
)

// MetaHandler serves health and build information
type MetaHandler struct {
	version response.VersionInfo
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(version, commit string) *MetaHandler {
	return &MetaHandler{
		version: response.VersionInfo{Version: version, Commit: commit},
	}
}

// Health handles GET /api/v1/health
func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

// VersionInfo handles GET /api/v1/version-info
func (h *MetaHandler) VersionInfo(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.version)
}
