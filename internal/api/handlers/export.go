package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jwhan/fintab/internal/analysis"
	"github.com/jwhan/fintab/internal/export"
	"github.com/jwhan/fintab/pkg/logger"
)

// ExportHandler serves analysis results as CSV downloads
type ExportHandler struct {
	service *analysis.Service
	logger  *logger.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(service *analysis.Service, log *logger.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  log,
	}
}

// Export renders one table of a fresh analysis as CSV
// GET /api/analyze/{ticker}/export/{kind}
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)

	kind, err := export.ParseKind(vars["kind"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Analyze(ctx, vars["ticker"])
	if err != nil {
		respondAnalysisError(w, h.logger, vars["ticker"], err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(result.Ticker, kind))

	if err := export.WriteCSV(w, result, kind); err != nil {
		// Headers are already sent; log only
		h.logger.WithError(err).Error("CSV rendering failed mid-response")
	}
}
