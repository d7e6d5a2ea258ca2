package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabhnoor12/cleardeal-ai/internal/analysis"
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/events"
	"github.com/prabhnoor12/cleardeal-ai/internal/riskhistory"
	internaltesting "github.com/prabhnoor12/cleardeal-ai/internal/testing"
)

func newAnalysisRouter(t *testing.T) (chi.Router, *internaltesting.MockContractRepo) {
	t.Helper()
	contracts := internaltesting.NewMockContractRepo()
	scores := internaltesting.NewMockRiskScoreRepo()
	history := riskhistory.NewStore()
	em := events.NewManager(zerolog.Nop())
	orchestrator := analysis.NewOrchestrator(contracts, scores, history, internaltesting.NewMockAIAdapter(), nil, em, zerolog.Nop())

	r := chi.NewRouter()
	NewAnalysisHandler(orchestrator, history, zerolog.Nop()).RegisterRoutes(r)
	return r, contracts
}

func seedContract(t *testing.T, contracts *internaltesting.MockContractRepo, id string) {
	t.Helper()
	_, err := contracts.Create(context.Background(), domain.Contract{
		ID:      id,
		State:   "TX",
		RawText: "plain contract text with no disclosures mentioned",
	})
	require.NoError(t, err)
}

func TestAnalysisHandler_Analyze_ReturnsRiskAnalysis(t *testing.T) {
	router, contracts := newAnalysisRouter(t)
	seedContract(t, contracts, "c1")

	req := httptest.NewRequest(http.MethodPost, "/risk-analysis/c1/analyze", bytes.NewReader([]byte(`{"skipAI":true}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "success", env.Status)
}

func TestAnalysisHandler_Analyze_UnknownContractReturns404(t *testing.T) {
	router, _ := newAnalysisRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/risk-analysis/missing/analyze", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalysisHandler_Get_ReturnsExistingAnalysis(t *testing.T) {
	router, contracts := newAnalysisRouter(t)
	seedContract(t, contracts, "c1")

	req := httptest.NewRequest(http.MethodGet, "/risk-analysis/c1/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalysisHandler_Recommendations_ReturnsList(t *testing.T) {
	router, contracts := newAnalysisRouter(t)
	seedContract(t, contracts, "c1")

	req := httptest.NewRequest(http.MethodGet, "/risk-analysis/c1/recommendations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "success", env.Status)
}

func TestAnalysisHandler_Trend_ReturnsEmptyTrendForUnknownContract(t *testing.T) {
	router, _ := newAnalysisRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/risk-analysis/missing/trend", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalysisHandler_Batch_RejectsEmptyContractIDs(t *testing.T) {
	router, _ := newAnalysisRouter(t)

	body, _ := json.Marshal(batchRequest{ContractIDs: nil})
	req := httptest.NewRequest(http.MethodPost, "/risk-analysis/batch", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysisHandler_Batch_ProcessesEachContract(t *testing.T) {
	router, contracts := newAnalysisRouter(t)
	seedContract(t, contracts, "c1")
	seedContract(t, contracts, "c2")

	body, _ := json.Marshal(batchRequest{ContractIDs: []string{"c1", "c2"}})
	req := httptest.NewRequest(http.MethodPost, "/risk-analysis/batch", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
