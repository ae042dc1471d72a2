package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
)

var absoluteURLRe = regexp.MustCompile(`^https?://`)

// ValidateHandler serves POST /api/validate: static length and format checks
// on hand-authored tags, no network involved.
type ValidateHandler struct {
	logger *slog.Logger
}

// NewValidateHandler creates the validate handler.
func NewValidateHandler(logger *slog.Logger) *ValidateHandler {
	return &ValidateHandler{logger: logger}
}

type validateRequest struct {
	Tags struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Image       string `json:"image"`
		URL         string `json:"url"`
	} `json:"tags"`
}

type lengthValidation struct {
	Present bool `json:"present"`
	Length  int  `json:"length"`
	Optimal bool `json:"optimal"`
}

type urlValidation struct {
	Present bool `json:"present"`
	Valid   bool `json:"valid"`
}

type validateResponse struct {
	Title       lengthValidation `json:"title"`
	Description lengthValidation `json:"description"`
	Image       urlValidation    `json:"image"`
	URL         urlValidation    `json:"url"`
}

// HandleValidate handles POST /api/validate
func (h *ValidateHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "Request body must be JSON")
		return
	}

	tags := req.Tags
	resp := validateResponse{
		Title: lengthValidation{
			Present: tags.Title != "",
			Length:  len(tags.Title),
			Optimal: len(tags.Title) >= 30 && len(tags.Title) <= 60,
		},
		Description: lengthValidation{
			Present: tags.Description != "",
			Length:  len(tags.Description),
			Optimal: len(tags.Description) >= 120 && len(tags.Description) <= 160,
		},
		Image: urlValidation{
			Present: tags.Image != "",
			Valid:   absoluteURLRe.MatchString(tags.Image),
		},
		URL: urlValidation{
			Present: tags.URL != "",
			Valid:   absoluteURLRe.MatchString(tags.URL),
		},
	}

	writeJSON(h.logger, w, http.StatusOK, resp)
}
