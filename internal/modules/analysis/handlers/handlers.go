// Package handlers provides HTTP handlers for series analysis.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/chronax-dev/chronax/internal/domain"
	"github.com/chronax-dev/chronax/internal/modules/analysis"
)

// Guards against resource exhaustion from oversized payloads.
const maxSamples = 500000

// Handler handles analysis HTTP requests
type Handler struct {
	glucose *analysis.Service
	cardiac *analysis.Service
	log     zerolog.Logger
}

// NewHandler creates a new analysis handler
func NewHandler(glucose, cardiac *analysis.Service, log zerolog.Logger) *Handler {
	return &Handler{
		glucose: glucose,
		cardiac: cardiac,
		log:     log.With().Str("handler", "analysis").Logger(),
	}
}

// analysisRequest is the JSON body shared by all analysis endpoints:
// plain parallel arrays plus the series-type discriminator.
type analysisRequest struct {
	SeriesType domain.SeriesType `json:"series_type"`
	Timestamps []time.Time       `json:"timestamps"`
	Values     []float64         `json:"values"`
}

// HandleAnalyze handles POST /api/analysis
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	series, svc, ok := h.parseSeries(w, r)
	if !ok {
		return
	}

	report, err := svc.Analyze(r.Context(), series)
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}

// HandleIndicators handles POST /api/analysis/indicators
func (h *Handler) HandleIndicators(w http.ResponseWriter, r *http.Request) {
	series, svc, ok := h.parseSeries(w, r)
	if !ok {
		return
	}

	vector, err := svc.Indicators(series)
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, vector)
}

// HandleSegments handles POST /api/analysis/segments
func (h *Handler) HandleSegments(w http.ResponseWriter, r *http.Request) {
	series, svc, ok := h.parseSeries(w, r)
	if !ok {
		return
	}

	report, err := svc.Analyze(r.Context(), series)
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"change_points": report.ChangePoints,
		"segments":      report.Segments,
	})
}

// parseSeries decodes and validates the request body and picks the
// service for the requested series type. On failure it writes the error
// response and returns ok=false.
func (h *Handler) parseSeries(w http.ResponseWriter, r *http.Request) (domain.Series, *analysis.Service, bool) {
	var request analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return domain.Series{}, nil, false
	}

	if len(request.Values) > maxSamples {
		h.writeError(w, http.StatusBadRequest, "Too many samples (max 500000)")
		return domain.Series{}, nil, false
	}

	series, err := domain.NewSeries(request.SeriesType, request.Timestamps, request.Values)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return domain.Series{}, nil, false
	}

	return series, h.serviceFor(request.SeriesType), true
}

// serviceFor picks the pipeline for the series type; unknown types use
// the glucose pipeline, mirroring the configuration defaults.
func (h *Handler) serviceFor(t domain.SeriesType) *analysis.Service {
	if t == domain.SeriesCardiac {
		return h.cardiac
	}
	return h.glucose
}

func (h *Handler) writeAnalysisError(w http.ResponseWriter, err error) {
	if domain.IsValidationError(err) {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.log.Error().Err(err).Msg("Analysis failed")
	h.writeError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
