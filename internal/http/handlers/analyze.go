package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"taglens/internal/domain"
	"taglens/internal/service/analyzer"
)

// AnalyzeHandler serves POST /api/analyze with cache-aside freshness
// semantics: a stored analysis for the same URL younger than the freshness
// window is returned as-is, otherwise a fresh analysis runs and is persisted.
type AnalyzeHandler struct {
	logger   *slog.Logger
	analyzer URLAnalyzer
	repo     domain.AnalysisRepository
	cache    domain.AnalysisCache
}

// NewAnalyzeHandler creates the analyze handler. cache may be nil.
func NewAnalyzeHandler(logger *slog.Logger, a URLAnalyzer, repo domain.AnalysisRepository, cache domain.AnalysisCache) *AnalyzeHandler {
	return &AnalyzeHandler{
		logger:   logger,
		analyzer: a,
		repo:     repo,
		cache:    cache,
	}
}

type analyzeRequest struct {
	URL string `json:"url"`
}

// HandleAnalyze handles POST /api/analyze
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(h.logger, w, http.StatusBadRequest, "Request body must be JSON with a url field")
		return
	}

	// Cache entries expire with the freshness window, so a hit needs no
	// age check
	if h.cache != nil {
		cached, err := h.cache.Get(ctx, req.URL)
		if err != nil {
			h.logger.Warn("Analysis cache lookup failed", "url", req.URL, "error", err)
		} else if cached != nil {
			h.logger.Info("Returning cached analysis", "url", req.URL, "analysis_id", cached.ID)
			writeJSON(h.logger, w, http.StatusOK, cached)
			return
		}
	}

	recent, err := h.repo.FindByURL(ctx, req.URL)
	if err != nil {
		h.logger.Warn("Stored analysis lookup failed", "url", req.URL, "error", err)
	} else if recent != nil && recent.IsFresh(time.Now()) {
		h.logger.Info("Returning stored analysis", "url", req.URL, "analysis_id", recent.ID)
		writeJSON(h.logger, w, http.StatusOK, recent)
		return
	}

	result, err := h.analyzer.AnalyzeURL(ctx, req.URL)
	if err != nil {
		if errors.Is(err, analyzer.ErrMalformedURL) {
			writeError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Analysis failed", "url", req.URL, "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.repo.Create(ctx, result); err != nil {
		h.logger.Error("Failed to persist analysis", "url", req.URL, "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, "Failed to store analysis")
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, result); err != nil {
			// Best-effort; the repository remains the source of truth
			h.logger.Warn("Failed to cache analysis", "url", req.URL, "error", err)
		}
	}

	h.logger.Info("Analysis completed",
		"url", req.URL,
		"analysis_id", result.ID,
		"suggestions", len(result.AISuggestions),
	)
	writeJSON(h.logger, w, http.StatusOK, result)
}

// HandleGetAnalysis handles GET /api/analysis/{id}
func (h *AnalyzeHandler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "id must be a valid analysis UUID")
		return
	}

	analysis, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("Analysis lookup failed", "analysis_id", id, "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, "Failed to get analysis")
		return
	}
	if analysis == nil {
		writeError(h.logger, w, http.StatusNotFound, "Analysis not found")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, analysis)
}
