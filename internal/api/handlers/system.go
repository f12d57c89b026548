package handlers

import (
	"net/http"

	"fonfolio/internal/api/response"
)

// SystemHandler handles system-level endpoints.
type SystemHandler struct {
	storeBackend string
}

// NewSystemHandler creates a new SystemHandler. storeBackend is reported in
// the health payload so operators can see which store the instance runs on.
func NewSystemHandler(storeBackend string) *SystemHandler {
	return &SystemHandler{storeBackend: storeBackend}
}

// Health handles GET /api/v1/system/health.
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"store":  h.storeBackend,
	})
}
