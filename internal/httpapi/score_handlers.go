package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prabhnoor12/cleardeal-ai/internal/apperrors"
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// ScoreHandler serves the /risk-scores endpoints of spec §6.
type ScoreHandler struct {
	scores domain.RiskScoreRepo
	log    zerolog.Logger
}

// NewScoreHandler constructs a ScoreHandler.
func NewScoreHandler(scores domain.RiskScoreRepo, log zerolog.Logger) *ScoreHandler {
	return &ScoreHandler{scores: scores, log: log.With().Str("handler", "scores").Logger()}
}

// RegisterRoutes mounts the risk-score endpoints under r.
func (h *ScoreHandler) RegisterRoutes(r chi.Router) {
	r.Route("/risk-scores/{id}", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Put("/", h.handlePut)
		r.Delete("/", h.handleDelete)
		r.Post("/calculate", h.handleCalculate)
	})
}

func (h *ScoreHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, err := h.scores.FindByContractID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, h.log, http.StatusOK, s)
}

func (h *ScoreHandler) handlePut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var s domain.RiskScore
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, h.log, apperrors.Wrap(apperrors.KindValidation, "decode risk score", err))
		return
	}
	s.ContractID = id

	updated, err := h.scores.Update(r.Context(), s)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, h.log, http.StatusOK, updated)
}

func (h *ScoreHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.scores.DeleteByContractID(r.Context(), id); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, h.log, http.StatusOK, map[string]bool{"deleted": true})
}

// handleCalculate returns the currently persisted score for the contract.
// It does not recompute flags or the score and writes nothing; a fresh
// computation goes through /risk-analysis/{id}/analyze.
func (h *ScoreHandler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, err := h.scores.FindByContractID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, h.log, http.StatusOK, s)
}
