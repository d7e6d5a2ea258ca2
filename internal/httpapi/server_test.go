package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabhnoor12/cleardeal-ai/internal/analysis"
	"github.com/prabhnoor12/cleardeal-ai/internal/events"
	"github.com/prabhnoor12/cleardeal-ai/internal/riskhistory"
	"github.com/prabhnoor12/cleardeal-ai/internal/scan"
	internaltesting "github.com/prabhnoor12/cleardeal-ai/internal/testing"
)

func newTestServer() *Server {
	em := events.NewManager(zerolog.Nop())
	history := riskhistory.NewStore()
	orchestrator := analysis.NewOrchestrator(
		internaltesting.NewMockContractRepo(),
		internaltesting.NewMockRiskScoreRepo(),
		history,
		internaltesting.NewMockAIAdapter(),
		nil,
		em,
		zerolog.Nop(),
	)
	return NewServer(Deps{
		Orchestrator: orchestrator,
		History:      history,
		Scores:       internaltesting.NewMockRiskScoreRepo(),
		ScanDriver:   scan.NewDriver(em, zerolog.Nop(), nil),
		Events:       em,
		DevMode:      true,
	}, zerolog.Nop())
}

func TestServer_Health_ReportsOK(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "success", env.Status)
}

func TestServer_UnknownRoute_Returns404(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/does-not-exist", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
