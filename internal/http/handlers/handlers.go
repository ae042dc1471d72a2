package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"taglens/internal/domain"
)

// URLAnalyzer runs the extraction/normalization pipeline for one URL.
type URLAnalyzer interface {
	AnalyzeURL(ctx context.Context, url string) (*domain.Analysis, error)
}

// TagImprover produces best-effort improved title/description suggestions.
type TagImprover interface {
	GenerateImprovedTags(ctx context.Context, req domain.ImproveRequest) domain.ImprovedTags
}

// errorResponse is the body of every failed request: {"message": "..."}
type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(logger *slog.Logger, w http.ResponseWriter, status int, message string) {
	writeJSON(logger, w, status, errorResponse{Message: message})
}
