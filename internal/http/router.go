package http

import (
	"log/slog"
	"net/http"

	"taglens/internal/domain"
	"taglens/internal/http/handlers"
	"taglens/internal/http/middleware"
)

type Router struct {
	mux             *http.ServeMux
	healthHandler   *handlers.HealthHandler
	analyzeHandler  *handlers.AnalyzeHandler
	generateHandler *handlers.GenerateHandler
	improveHandler  *handlers.ImproveHandler
	validateHandler *handlers.ValidateHandler
}

func NewRouter(
	logger *slog.Logger,
	analyzer handlers.URLAnalyzer,
	improver handlers.TagImprover,
	analysisRepo domain.AnalysisRepository,
	tagsRepo domain.GeneratedTagsRepository,
	cache domain.AnalysisCache,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		healthHandler:   handlers.NewHealthHandler(logger),
		analyzeHandler:  handlers.NewAnalyzeHandler(logger, analyzer, analysisRepo, cache),
		generateHandler: handlers.NewGenerateHandler(logger, tagsRepo),
		improveHandler:  handlers.NewImproveHandler(logger, improver),
		validateHandler: handlers.NewValidateHandler(logger),
	}
}

func (r *Router) SetupRoutes() http.Handler {
	// Health check
	r.mux.HandleFunc("GET /health", r.healthHandler.HandleHealth)

	// Analysis
	r.mux.HandleFunc("POST /api/analyze", r.analyzeHandler.HandleAnalyze)
	r.mux.HandleFunc("GET /api/analysis/{id}", r.analyzeHandler.HandleGetAnalysis)

	// Tag generation
	r.mux.HandleFunc("POST /api/generate", r.generateHandler.HandleGenerate)
	r.mux.HandleFunc("GET /api/recent", r.generateHandler.HandleRecent)
	r.mux.HandleFunc("POST /api/validate", r.validateHandler.HandleValidate)

	// AI improvements
	r.mux.HandleFunc("POST /api/improve", r.improveHandler.HandleImprove)

	return middleware.CORS(r.mux)
}
