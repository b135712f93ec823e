package handler

import (
	"net/http"

	"github.com/timhorst/horsthomes/internal/version"
)

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSONSuccess(w, map[string]any{
		"status":  "ok",
		"version": version.Version,
	})
}
