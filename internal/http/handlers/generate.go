package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"taglens/internal/domain"
	"taglens/internal/pkg/urlcheck"
	"taglens/internal/service/analyzer"
)

const defaultRecentLimit = 10

// GenerateHandler serves the tag generator endpoints.
type GenerateHandler struct {
	logger *slog.Logger
	repo   domain.GeneratedTagsRepository
}

// NewGenerateHandler creates the generate handler.
func NewGenerateHandler(logger *slog.Logger, repo domain.GeneratedTagsRepository) *GenerateHandler {
	return &GenerateHandler{
		logger: logger,
		repo:   repo,
	}
}

// HandleGenerate handles POST /api/generate
func (h *GenerateHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req analyzer.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "Request body must be JSON")
		return
	}

	if req.Title == "" || req.Description == "" {
		writeError(h.logger, w, http.StatusBadRequest, "title and description are required")
		return
	}
	if _, err := urlcheck.Parse(req.URL); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "url must be a valid http(s) URL")
		return
	}
	if !domain.ValidGenType(req.Type) {
		writeError(h.logger, w, http.StatusBadRequest, "type must be one of website, article, product, video")
		return
	}

	tags := &domain.GeneratedTags{
		Title:         req.Title,
		Description:   req.Description,
		Image:         req.Image,
		URL:           req.URL,
		SiteName:      req.SiteName,
		Type:          req.Type,
		GeneratedCode: analyzer.GenerateTags(req),
	}

	if err := h.repo.Create(ctx, tags); err != nil {
		h.logger.Error("Failed to persist generated tags", "url", req.URL, "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, "Failed to store generated tags")
		return
	}

	h.logger.Info("Tags generated", "url", req.URL, "type", req.Type, "tags_id", tags.ID)
	writeJSON(h.logger, w, http.StatusOK, tags)
}

// HandleRecent handles GET /api/recent
func (h *GenerateHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultRecentLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	recent, err := h.repo.Recent(ctx, limit)
	if err != nil {
		h.logger.Error("Failed to retrieve recent tags", "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, "Failed to get recent tags")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, recent)
}
