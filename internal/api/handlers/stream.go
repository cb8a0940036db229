package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/jwhan/fintab/internal/analysis"
	"github.com/jwhan/fintab/internal/contracts"
	"github.com/jwhan/fintab/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Same-origin enforcement happens at the proxy layer
	},
}

// StreamHandler streams per-stage analysis progress over a websocket
type StreamHandler struct {
	service *analysis.Service
	logger  *logger.Logger
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(service *analysis.Service, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		service: service,
		logger:  log,
	}
}

// StreamEvent is one progress message on the analysis stream
type StreamEvent struct {
	Stage  string                    `json:"stage"`
	Detail string                    `json:"detail,omitempty"`
	Error  string                    `json:"error,omitempty"`
	Result *contracts.AnalysisResult `json:"result,omitempty"`
}

// Stream runs an analysis and emits a message per stage, ending with
// either the full result or an error event
// GET /api/analyze/stream?ticker=AAPL
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("ticker")
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "ticker query parameter is required")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	send := func(event StreamEvent) {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.WithError(err).Debug("Stream write failed, client likely gone")
		}
	}

	result, err := h.service.AnalyzeWithProgress(r.Context(), symbol, func(stage, detail string) {
		send(StreamEvent{Stage: stage, Detail: detail})
	})
	if err != nil {
		send(StreamEvent{Stage: "error", Error: err.Error()})
		return
	}

	send(StreamEvent{Stage: "result", Result: result})
}
