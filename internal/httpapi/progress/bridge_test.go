package progress

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/prabhnoor12/cleardeal-ai/internal/events"
)

func TestRelevantToScan_MatchesByScanID(t *testing.T) {
	evt := &events.EventWithData{Type: events.ScanProgress, Data: &events.ScanProgressData{ScanID: "s1", Step: "x", Percent: 10}}
	assert.True(t, relevantToScan(evt, "s1"))
	assert.False(t, relevantToScan(evt, "s2"))
}

func TestRelevantToScan_FalseWhenPayloadHasNoScanID(t *testing.T) {
	evt := &events.EventWithData{Type: events.ErrorOccurred, Data: &events.ErrorEventData{Source: "x", Message: "boom"}}
	assert.False(t, relevantToScan(evt, "s1"))
}

func TestBridge_ServeWS_StreamsMatchingScanEvents(t *testing.T) {
	em := events.NewManager(zerolog.Nop())
	bridge := NewBridge(em, zerolog.Nop())
	r := chi.NewRouter()
	bridge.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/scans/s1/progress/ws"
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "test done")

	time.Sleep(50 * time.Millisecond)
	em.EmitTyped(events.ScanProgress, "scan", &events.ScanProgressData{ScanID: "s1", Step: "Detect risks", Percent: 40})

	var received events.EventWithData
	readCtx, readCancel := context.WithTimeout(ctx, 2*time.Second)
	defer readCancel()
	require.NoError(t, wsjson.Read(readCtx, conn, &received))

	assert.Equal(t, events.ScanProgress, received.Type)
}

func TestBridge_RegisterRoutes_RejectsPlainHTTPGet(t *testing.T) {
	em := events.NewManager(zerolog.Nop())
	bridge := NewBridge(em, zerolog.Nop())
	r := chi.NewRouter()
	bridge.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/scans/s1/progress/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
}
