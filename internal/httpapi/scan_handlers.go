package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prabhnoor12/cleardeal-ai/internal/apperrors"
	"github.com/prabhnoor12/cleardeal-ai/internal/scan"
)

// ScanHandler serves the /scans endpoints of spec §6.
type ScanHandler struct {
	driver *scan.Driver
	log    zerolog.Logger
}

// NewScanHandler constructs a ScanHandler.
func NewScanHandler(driver *scan.Driver, log zerolog.Logger) *ScanHandler {
	return &ScanHandler{driver: driver, log: log.With().Str("handler", "scans").Logger()}
}

// RegisterRoutes mounts the scan endpoints under r.
func (h *ScanHandler) RegisterRoutes(r chi.Router) {
	r.Route("/scans", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/execute", h.handleExecute)
			r.Post("/retry", h.handleRetry)
			r.Get("/progress", h.handleProgress)
		})
	})
}

type createScanRequest struct {
	DocumentURL string `json:"documentUrl"`
	RequestedBy string `json:"requestedBy"`
	ScanType    string `json:"scanType"`
}

func (h *ScanHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, apperrors.Wrap(apperrors.KindValidation, "decode scan request", err))
		return
	}
	scanID := scan.NewScanID()
	writeData(w, h.log, http.StatusCreated, map[string]string{"id": scanID, "status": string(scan.StatusPending)})
}

type executeScanRequest struct {
	ContractText string           `json:"contractText"`
	State        string           `json:"state"`
	Options      scan.StepOptions `json:"options"`
}

func (h *ScanHandler) handleExecute(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "id")
	var req executeScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, apperrors.Wrap(apperrors.KindValidation, "decode execute request", err))
		return
	}
	req.Options.State = req.State
	result := h.driver.Execute(r.Context(), scanID, req.ContractText, req.Options)
	writeData(w, h.log, http.StatusOK, result)
}

func (h *ScanHandler) handleRetry(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "id")
	result, err := h.driver.RetryFailedScan(r.Context(), scanID)
	if err != nil {
		writeError(w, h.log, apperrors.Wrap(apperrors.KindValidation, "retry scan", err))
		return
	}
	writeData(w, h.log, http.StatusOK, result)
}

func (h *ScanHandler) handleProgress(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "id")
	status, result, ok := h.driver.Progress(scanID)
	if !ok {
		writeError(w, h.log, apperrors.NotFound("scan", scanID))
		return
	}
	writeData(w, h.log, http.StatusOK, map[string]interface{}{"status": status, "result": result})
}
