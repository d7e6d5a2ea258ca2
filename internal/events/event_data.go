// Package events provides the typed event bus used to report scan and
// analysis progress: a small EventType enum, EventData interface, and a
// Manager that logs and fans out emitted events to subscribers.
package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EventType identifies the kind of event carried by an EventData.
type EventType string

const (
	ScanStarted      EventType = "SCAN_STARTED"
	ScanProgress     EventType = "SCAN_PROGRESS"
	ScanCompleted    EventType = "SCAN_COMPLETED"
	ScanFailed       EventType = "SCAN_FAILED"
	AnalysisComplete EventType = "ANALYSIS_COMPLETE"
	RiskScoreUpdated EventType = "RISK_SCORE_UPDATED"
	ErrorOccurred    EventType = "ERROR_OCCURRED"
)

// EventData is the interface every typed event payload implements.
type EventData interface {
	EventType() EventType
}

// ScanStartedData announces a scan job transitioning to running.
type ScanStartedData struct {
	ScanID     string `json:"scanId"`
	ContractID string `json:"contractId,omitempty"`
}

func (d *ScanStartedData) EventType() EventType { return ScanStarted }

// ScanProgressData reports one named step of a scan job.
type ScanProgressData struct {
	ScanID  string `json:"scanId"`
	Step    string `json:"step"`
	Percent int    `json:"percent"`
}

func (d *ScanProgressData) EventType() EventType { return ScanProgress }

// ScanCompletedData announces a scan job's final score.
type ScanCompletedData struct {
	ScanID string `json:"scanId"`
	Score  int    `json:"score"`
}

func (d *ScanCompletedData) EventType() EventType { return ScanCompleted }

// ScanFailedData announces a scan job that could not complete.
type ScanFailedData struct {
	ScanID string `json:"scanId"`
	Error  string `json:"error"`
}

func (d *ScanFailedData) EventType() EventType { return ScanFailed }

// AnalysisCompleteData announces an orchestrator analysis finishing.
type AnalysisCompleteData struct {
	ContractID string `json:"contractId"`
	Score      int    `json:"score"`
	Flagged    bool   `json:"flagged"`
}

func (d *AnalysisCompleteData) EventType() EventType { return AnalysisComplete }

// RiskScoreUpdatedData announces a new current RiskScore being persisted.
type RiskScoreUpdatedData struct {
	ContractID string `json:"contractId"`
	Score      int    `json:"score"`
}

func (d *RiskScoreUpdatedData) EventType() EventType { return RiskScoreUpdated }

// ErrorEventData carries a non-fatal, logged error such as an AI adapter
// failure or a rule-execution panic that was contained.
type ErrorEventData struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

func (d *ErrorEventData) EventType() EventType { return ErrorOccurred }

// EventWithData is an emitted event envelope: type, timestamp, module, and
// the typed payload, serialized with its concrete type preserved.
type EventWithData struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Module    string    `json:"module"`
	Data      EventData `json:"data"`
}

// MarshalJSON serializes the envelope with Data flattened to its own JSON.
func (e *EventWithData) MarshalJSON() ([]byte, error) {
	type Alias EventWithData
	aux := &struct {
		Data json.RawMessage `json:"data"`
		*Alias
	}{Alias: (*Alias)(e)}
	if e.Data != nil {
		b, err := json.Marshal(e.Data)
		if err != nil {
			return nil, err
		}
		aux.Data = b
	}
	return json.Marshal(aux)
}

// Subscriber receives a copy of every event emitted after it subscribes.
type Subscriber chan *EventWithData

// Manager logs every emitted event and fans it out to subscribers
// (e.g. the websocket progress bridge in internal/httpapi/progress).
type Manager struct {
	log zerolog.Logger

	mu   sync.RWMutex
	subs map[int]Subscriber
	next int
}

// NewManager constructs an event Manager logging through log.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		log:  log.With().Str("component", "events").Logger(),
		subs: make(map[int]Subscriber),
	}
}

// EmitTyped logs and broadcasts a typed event for the named module.
func (m *Manager) EmitTyped(eventType EventType, module string, data EventData) {
	evt := &EventWithData{Type: eventType, Timestamp: time.Now(), Module: module, Data: data}

	b, _ := json.Marshal(evt)
	m.log.Info().
		Str("event_type", string(eventType)).
		Str("module", module).
		RawJSON("event", b).
		Msg("event emitted")

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, sub := range m.subs {
		select {
		case sub <- evt:
		default:
			// slow subscriber; drop rather than block the emitter
		}
	}
}

// EmitError is a convenience wrapper for ErrorOccurred events.
func (m *Manager) EmitError(module string, err error) {
	m.EmitTyped(ErrorOccurred, module, &ErrorEventData{Source: module, Message: err.Error()})
}

// Subscribe registers a new buffered subscriber channel and returns it
// along with a function to unsubscribe and close it.
func (m *Manager) Subscribe(buffer int) (Subscriber, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next
	m.next++
	ch := make(Subscriber, buffer)
	m.subs[id] = ch
	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
	}
}
