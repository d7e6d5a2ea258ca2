// Package scanprogress throttles the scan driver's step-progress events so
// a fast-running job (or many concurrent ones) doesn't flood the event bus
// and its websocket subscribers, grounded on the teacher's
// internal/queue/progress.go ProgressReporter.
package scanprogress

import (
	"time"

	"github.com/prabhnoor12/cleardeal-ai/internal/events"
)

const defaultMinInterval = 100 * time.Millisecond

// Reporter emits ScanProgress events for one scan id, throttled to at most
// one report per minInterval. 100% completion always bypasses the throttle
// so callers never miss the final step.
type Reporter struct {
	events      *events.Manager
	scanID      string
	minInterval time.Duration
	lastReport  time.Time
}

// NewReporter constructs a Reporter for scanID over em, using the default
// 100ms (10 reports/sec) throttle.
func NewReporter(em *events.Manager, scanID string) *Reporter {
	return &Reporter{events: em, scanID: scanID, minInterval: defaultMinInterval}
}

// Report emits a ScanProgress event for step at percent, dropping the
// report if it arrives before minInterval has elapsed since the last one
// (unless percent is 100).
func (r *Reporter) Report(step string, percent int) {
	if r.events == nil {
		return
	}

	now := time.Now()
	if percent != 100 && now.Sub(r.lastReport) < r.minInterval {
		return
	}
	r.lastReport = now

	r.events.EmitTyped(events.ScanProgress, "scan", &events.ScanProgressData{
		ScanID:  r.scanID,
		Step:    step,
		Percent: percent,
	})
}
