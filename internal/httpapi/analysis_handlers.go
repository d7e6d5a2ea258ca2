package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prabhnoor12/cleardeal-ai/internal/analysis"
	"github.com/prabhnoor12/cleardeal-ai/internal/apperrors"
	"github.com/prabhnoor12/cleardeal-ai/internal/riskhistory"
)

// AnalysisHandler serves the /risk-analysis endpoints of spec §6.
type AnalysisHandler struct {
	orchestrator *analysis.Orchestrator
	history      *riskhistory.Store
	log          zerolog.Logger
}

// NewAnalysisHandler constructs an AnalysisHandler.
func NewAnalysisHandler(o *analysis.Orchestrator, history *riskhistory.Store, log zerolog.Logger) *AnalysisHandler {
	return &AnalysisHandler{orchestrator: o, history: history, log: log.With().Str("handler", "analysis").Logger()}
}

// RegisterRoutes mounts the analysis endpoints under r.
func (h *AnalysisHandler) RegisterRoutes(r chi.Router) {
	r.Route("/risk-analysis", func(r chi.Router) {
		r.Post("/batch", h.handleBatch)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/analyze", h.handleAnalyze)
			r.Get("/", h.handleGet)
			r.Get("/recommendations", h.handleRecommendations)
			r.Get("/trend", h.handleTrend)
		})
	})
}

type analyzeRequest struct {
	SkipAI       bool   `json:"skipAI"`
	ForceRefresh bool   `json:"forceRefresh"`
	CacheTTL     string `json:"cacheTtl,omitempty"`
}

func (req analyzeRequest) toOptions() analysis.AnalysisOptions {
	opts := analysis.AnalysisOptions{SkipAI: req.SkipAI, ForceRefresh: req.ForceRefresh}
	if req.CacheTTL != "" {
		if d, err := time.ParseDuration(req.CacheTTL); err == nil {
			opts.CacheTTL = d
		}
	}
	return opts
}

func (h *AnalysisHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req analyzeRequest
	if r.Body != nil && r.ContentLength != 0 {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := h.orchestrator.Analyze(r.Context(), id, req.toOptions())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, h.log, http.StatusOK, result)
}

func (h *AnalysisHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := h.orchestrator.Analyze(r.Context(), id, analysis.AnalysisOptions{})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, h.log, http.StatusOK, result)
}

func (h *AnalysisHandler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := h.orchestrator.Analyze(r.Context(), id, analysis.AnalysisOptions{})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, h.log, http.StatusOK, analysis.Recommend(result))
}

func (h *AnalysisHandler) handleTrend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	trend := h.history.Trend(id)
	changes := h.history.FlagChanges(id)
	writeData(w, h.log, http.StatusOK, map[string]interface{}{"trend": trend, "flagChanges": changes})
}

type batchRequest struct {
	ContractIDs []string `json:"contractIds"`
}

func (h *AnalysisHandler) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, apperrors.Wrap(apperrors.KindValidation, "decode batch request", err))
		return
	}
	if len(req.ContractIDs) == 0 {
		writeError(w, h.log, apperrors.New(apperrors.KindValidation, "contractIds must not be empty"))
		return
	}
	result := h.orchestrator.AnalyzeBatch(r.Context(), req.ContractIDs, analysis.AnalysisOptions{})
	writeData(w, h.log, http.StatusOK, result)
}
