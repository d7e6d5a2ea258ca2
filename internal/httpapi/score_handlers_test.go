package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	internaltesting "github.com/prabhnoor12/cleardeal-ai/internal/testing"
)

func newScoreRouter(scores domain.RiskScoreRepo) chi.Router {
	r := chi.NewRouter()
	NewScoreHandler(scores, zerolog.Nop()).RegisterRoutes(r)
	return r
}

func TestScoreHandler_Get_ReturnsPersistedScore(t *testing.T) {
	repo := internaltesting.NewMockRiskScoreRepo()
	repo.Seed(domain.RiskScore{ContractID: "c1", Score: 72})
	router := newScoreRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/risk-scores/c1/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "success", env.Status)
}

func TestScoreHandler_Get_PropagatesRepoError(t *testing.T) {
	repo := internaltesting.NewMockRiskScoreRepo()
	repo.SetError(errors.New("boom"))
	router := newScoreRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/risk-scores/c1/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestScoreHandler_Put_UpdatesScore(t *testing.T) {
	repo := internaltesting.NewMockRiskScoreRepo()
	repo.Seed(domain.RiskScore{ContractID: "c1", Score: 50})
	router := newScoreRouter(repo)

	body, _ := json.Marshal(domain.RiskScore{Score: 90})
	req := httptest.NewRequest(http.MethodPut, "/risk-scores/c1/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	found, err := repo.FindByContractID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 90, found.Score)
}

func TestScoreHandler_Put_RejectsMalformedBody(t *testing.T) {
	router := newScoreRouter(internaltesting.NewMockRiskScoreRepo())

	req := httptest.NewRequest(http.MethodPut, "/risk-scores/c1/", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScoreHandler_Delete_RemovesScore(t *testing.T) {
	repo := internaltesting.NewMockRiskScoreRepo()
	repo.Seed(domain.RiskScore{ContractID: "c1", Score: 50})
	router := newScoreRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/risk-scores/c1/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
