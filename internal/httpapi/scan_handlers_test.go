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

	"github.com/prabhnoor12/cleardeal-ai/internal/events"
	"github.com/prabhnoor12/cleardeal-ai/internal/scan"
)

func newScanRouter() (chi.Router, *scan.Driver) {
	em := events.NewManager(zerolog.Nop())
	driver := scan.NewDriver(em, zerolog.Nop(), nil)
	r := chi.NewRouter()
	NewScanHandler(driver, zerolog.Nop()).RegisterRoutes(r)
	return r, driver
}

func TestScanHandler_Create_ReturnsPendingScan(t *testing.T) {
	router, _ := newScanRouter()

	body, _ := json.Marshal(createScanRequest{DocumentURL: "https://example.com/doc.pdf", RequestedBy: "agent"})
	req := httptest.NewRequest(http.MethodPost, "/scans/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, string(scan.StatusPending), data["status"])
}

func TestScanHandler_Create_RejectsMalformedBody(t *testing.T) {
	router, _ := newScanRouter()

	req := httptest.NewRequest(http.MethodPost, "/scans/", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanHandler_Execute_ReturnsScanResult(t *testing.T) {
	router, _ := newScanRouter()
	scanID := scan.NewScanID()

	body, _ := json.Marshal(executeScanRequest{ContractText: "plain contract text", State: "TX"})
	req := httptest.NewRequest(http.MethodPost, "/scans/"+scanID+"/execute", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "success", env.Status)
}

func TestScanHandler_Progress_ReturnsNotFoundForUnknownScan(t *testing.T) {
	router, _ := newScanRouter()

	req := httptest.NewRequest(http.MethodGet, "/scans/unknown/progress", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScanHandler_Progress_ReturnsStatusAfterExecute(t *testing.T) {
	router, driver := newScanRouter()
	scanID := scan.NewScanID()
	driver.Execute(context.Background(), scanID, "plain contract text", scan.StepOptions{})

	req := httptest.NewRequest(http.MethodGet, "/scans/"+scanID+"/progress", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "success", env.Status)
}

func TestScanHandler_Retry_ReRunsScan(t *testing.T) {
	router, driver := newScanRouter()
	scanID := scan.NewScanID()
	driver.Execute(context.Background(), scanID, "plain contract text", scan.StepOptions{})

	req := httptest.NewRequest(http.MethodPost, "/scans/"+scanID+"/retry", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
