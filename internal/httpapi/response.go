package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/prabhnoor12/cleardeal-ai/internal/apperrors"
)

// Envelope is the response shape of every endpoint (spec §6): "status" is
// either "success" or "error"; "data" carries the payload on success;
// on failure "code" carries a stable error code and "message" the error
// text. writeError never sets "details".
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Details string      `json:"details,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func writeData(w http.ResponseWriter, log zerolog.Logger, status int, data interface{}) {
	writeJSON(w, log, status, Envelope{Status: "success", Data: data})
}

// writeError maps an apperrors.Kind to an HTTP status and a stable error
// code, per spec §7's error taxonomy.
func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	kind, ok := apperrors.KindOf(err)
	if !ok {
		writeJSON(w, log, http.StatusInternalServerError, Envelope{Status: "error", Message: err.Error(), Code: "INTERNAL"})
		return
	}

	status, code := statusForKind(kind)
	writeJSON(w, log, status, Envelope{Status: "error", Message: err.Error(), Code: code})
}

func statusForKind(kind apperrors.Kind) (int, string) {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case apperrors.KindValidation:
		return http.StatusBadRequest, "VALIDATION"
	case apperrors.KindUnsupportedState:
		return http.StatusUnprocessableEntity, "UNSUPPORTED_STATE"
	case apperrors.KindAIUnavailable, apperrors.KindAIParseFailure:
		return http.StatusBadGateway, "AI_UNAVAILABLE"
	case apperrors.KindRuleExecutionError:
		return http.StatusUnprocessableEntity, "RULE_EXECUTION_ERROR"
	case apperrors.KindCancelled:
		return http.StatusRequestTimeout, "CANCELLED"
	case apperrors.KindPersistence:
		return http.StatusInternalServerError, "PERSISTENCE"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
