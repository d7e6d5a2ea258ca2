// Package progress adapts internal/events scan-progress events onto a
// websocket, one connection per scan id.
package progress

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/prabhnoor12/cleardeal-ai/internal/events"
)

// Bridge serves GET /scans/{id}/progress/ws as a websocket stream of the
// scan's progress events, filtered by scan id.
type Bridge struct {
	events *events.Manager
	log    zerolog.Logger
}

// NewBridge constructs a progress Bridge over the shared event manager.
func NewBridge(em *events.Manager, log zerolog.Logger) *Bridge {
	return &Bridge{events: em, log: log.With().Str("component", "progress").Logger()}
}

// RegisterRoutes mounts the websocket progress endpoint under r.
func (b *Bridge) RegisterRoutes(r chi.Router) {
	r.Get("/scans/{id}/progress/ws", b.serveWS)
}

func (b *Bridge) serveWS(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "id")

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		b.log.Error().Err(err).Msg("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closing")

	sub, unsubscribe := b.events.Subscribe(16)
	defer unsubscribe()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "client disconnected")
			return
		case evt, ok := <-sub:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "event stream closed")
				return
			}
			if !relevantToScan(evt, scanID) {
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(writeCtx, conn, evt)
			cancel()
			if err != nil {
				b.log.Warn().Err(err).Msg("websocket write failed; closing")
				conn.Close(websocket.StatusInternalError, "write failed")
				return
			}
			if evt.Type == events.ScanCompleted || evt.Type == events.ScanFailed {
				conn.Close(websocket.StatusNormalClosure, "scan finished")
				return
			}
		}
	}
}

// relevantToScan reports whether evt's payload carries the given scan id.
func relevantToScan(evt *events.EventWithData, scanID string) bool {
	b, err := json.Marshal(evt.Data)
	if err != nil {
		return false
	}
	var withID struct {
		ScanID string `json:"scanId"`
	}
	if err := json.Unmarshal(b, &withID); err != nil {
		return false
	}
	return withID.ScanID == scanID
}
