package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jwhan/fintab/internal/analysis"
	"github.com/jwhan/fintab/internal/external/edgar"
	"github.com/jwhan/fintab/internal/ticker"
	"github.com/jwhan/fintab/pkg/logger"
)

// AnalyzeHandler handles company analysis API endpoints
// SSOT: analysis API handlers live in this struct only
type AnalyzeHandler struct {
	service *analysis.Service
	repo    *analysis.Repository // nil when DB is not configured
	logger  *logger.Logger
}

// NewAnalyzeHandler creates a new analysis handler
func NewAnalyzeHandler(service *analysis.Service, repo *analysis.Repository, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		service: service,
		repo:    repo,
		logger:  log,
	}
}

// AnalyzeRequest is the analysis request body
type AnalyzeRequest struct {
	Ticker string `json:"ticker"`
}

// Analyze runs a fresh analysis for a ticker
// POST /api/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	result, err := h.service.Analyze(ctx, req.Ticker)
	if err != nil {
		respondAnalysisError(w, h.logger, req.Ticker, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Latest returns the stored snapshot for a ticker
// GET /api/analyze/{ticker}
func (h *AnalyzeHandler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	symbol := mux.Vars(r)["ticker"]

	normalized, err := ticker.Normalize(symbol)
	if err != nil {
		respondAnalysisError(w, h.logger, symbol, err)
		return
	}

	if h.repo == nil {
		respondError(w, http.StatusNotImplemented, "snapshot storage is not configured")
		return
	}

	snapshot, err := h.repo.LatestResult(ctx, normalized)
	if err != nil {
		if errors.Is(err, analysis.ErrSnapshotNotFound) {
			respondError(w, http.StatusNotFound, "no stored analysis for "+normalized)
			return
		}
		h.logger.WithError(err).Error("Failed to load analysis snapshot")
		respondError(w, http.StatusInternalServerError, "failed to load snapshot")
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// respondAnalysisError maps domain errors onto HTTP statuses
func respondAnalysisError(w http.ResponseWriter, log *logger.Logger, symbol string, err error) {
	var invalid *ticker.InvalidTickerError
	if errors.As(err, &invalid) {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":       invalid.Reason,
			"ticker":      invalid.Input,
			"suggestions": invalid.Suggestions,
		})
		return
	}

	var notFound *edgar.ErrTickerNotFound
	if errors.As(err, &notFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	log.WithError(err).WithField("ticker", symbol).Error("Analysis failed")
	respondError(w, http.StatusBadGateway, "analysis failed: upstream data unavailable")
}
