package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStateRulesRouter() chi.Router {
	r := chi.NewRouter()
	NewStateRulesHandler(zerolog.Nop()).RegisterRoutes(r)
	r.Get("/states", ListSupportedStates(zerolog.Nop()))
	return r
}

func TestStateRulesHandler_Apply_RejectsUnsupportedState(t *testing.T) {
	router := newStateRulesRouter()
	body, _ := json.Marshal(map[string]string{"state": "ZZ", "text": "anything"})
	req := httptest.NewRequest(http.MethodPost, "/state-rules/c1/apply", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestStateRulesHandler_Apply_EvaluatesSupportedState(t *testing.T) {
	router := newStateRulesRouter()
	body, _ := json.Marshal(map[string]string{"state": "TX", "text": "plain text with no disclosures"})
	req := httptest.NewRequest(http.MethodPost, "/state-rules/c1/apply", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "success", env.Status)
}

func TestStateRulesHandler_Validate_ReportsValidity(t *testing.T) {
	router := newStateRulesRouter()
	body, _ := json.Marshal(map[string]string{"state": "CA", "text": "no relevant content"})
	req := httptest.NewRequest(http.MethodPost, "/state-rules/c1/validate", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListSupportedStates_ReturnsFourStates(t *testing.T) {
	router := newStateRulesRouter()
	req := httptest.NewRequest(http.MethodGet, "/states", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	data, ok := env.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 4)
}
