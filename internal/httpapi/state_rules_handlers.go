package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prabhnoor12/cleardeal-ai/internal/apperrors"
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/rules"
	"github.com/prabhnoor12/cleardeal-ai/internal/stateregistry"
)

// StateRulesHandler serves the /state-rules endpoints of spec §6: applying
// and validating state-specific rules, and a compliance report summary.
type StateRulesHandler struct {
	log zerolog.Logger
}

// NewStateRulesHandler constructs a StateRulesHandler.
func NewStateRulesHandler(log zerolog.Logger) *StateRulesHandler {
	return &StateRulesHandler{log: log.With().Str("handler", "state-rules").Logger()}
}

// RegisterRoutes mounts the state-rules endpoints under r.
func (h *StateRulesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/state-rules/{contractId}", func(r chi.Router) {
		r.Post("/apply", h.handleApply)
		r.Post("/validate", h.handleValidate)
		r.Get("/compliance-report", h.handleComplianceReport)
	})
}

type stateRulesRequest struct {
	State string `json:"state"`
	Text  string `json:"text"`
}

func (req stateRulesRequest) evaluate(contractID string) ([]domain.RuleResult, error) {
	if !stateregistry.IsSupported(req.State) {
		return nil, apperrors.New(apperrors.KindUnsupportedState, "state \""+req.State+"\" is not supported")
	}
	engine := rules.NewEngine()
	engine.RegisterAll(stateregistry.CreateRules(req.State, nil))
	ctx := domain.RuleContext{Contract: domain.Contract{ID: contractID, State: req.State}, State: req.State, Text: req.Text}
	return engine.Evaluate(ctx), nil
}

func (h *StateRulesHandler) decode(w http.ResponseWriter, r *http.Request) (stateRulesRequest, bool) {
	var req stateRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, apperrors.Wrap(apperrors.KindValidation, "decode state rules request", err))
		return req, false
	}
	return req, true
}

func (h *StateRulesHandler) handleApply(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contractId")
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	results, err := req.evaluate(contractID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, h.log, http.StatusOK, map[string]interface{}{
		"results": results,
		"flags":   rules.AggregateFlags(results),
	})
}

func (h *StateRulesHandler) handleValidate(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contractId")
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	results, err := req.evaluate(contractID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, h.log, http.StatusOK, map[string]interface{}{"valid": rules.PassRate(results) == 100})
}

func (h *StateRulesHandler) handleComplianceReport(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contractId")
	state := r.URL.Query().Get("state")
	req := stateRulesRequest{State: state, Text: r.URL.Query().Get("text")}
	results, err := req.evaluate(contractID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, h.log, http.StatusOK, rules.Summarize(results))
}

// ListSupportedStates exposes stateregistry.List for an informational
// endpoint outside the /state-rules/{contractId} resource.
func ListSupportedStates(log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeData(w, log, http.StatusOK, stateregistry.List())
	}
}
