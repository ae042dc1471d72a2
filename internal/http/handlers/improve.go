package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"taglens/internal/domain"
)

// ImproveHandler serves POST /api/improve, a best-effort secondary AI call
// that suggests rewritten metadata. It never fails: an unusable engine reply
// produces an empty object.
type ImproveHandler struct {
	logger   *slog.Logger
	improver TagImprover
}

// NewImproveHandler creates the improve handler.
func NewImproveHandler(logger *slog.Logger, improver TagImprover) *ImproveHandler {
	return &ImproveHandler{
		logger:   logger,
		improver: improver,
	}
}

// HandleImprove handles POST /api/improve
func (h *ImproveHandler) HandleImprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.ImproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "Request body must be JSON")
		return
	}
	if req.URL == "" {
		writeError(h.logger, w, http.StatusBadRequest, "url is required")
		return
	}

	improved := h.improver.GenerateImprovedTags(ctx, req)
	writeJSON(h.logger, w, http.StatusOK, improved)
}
