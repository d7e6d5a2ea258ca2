// Package scan implements the multi-step job wrapper around the analysis
// orchestrator (spec §4.H): a pending→running→completed|failed state
// machine with stepped progress reporting and per-step error accumulation.
package scan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/events"
	"github.com/prabhnoor12/cleardeal-ai/internal/retry"
	"github.com/prabhnoor12/cleardeal-ai/internal/rules"
	"github.com/prabhnoor12/cleardeal-ai/internal/scanprogress"
	"github.com/prabhnoor12/cleardeal-ai/internal/stateregistry"
	"github.com/prabhnoor12/cleardeal-ai/internal/utils"
)

// Status is the scan job state machine's current state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ScanType classifies the depth of a requested scan.
type ScanType string

const (
	ScanBasic    ScanType = "basic"
	ScanAdvanced ScanType = "advanced"
	ScanCustom   ScanType = "custom"
)

// ScanRequest is the input to a scan job.
type ScanRequest struct {
	DocumentURL string
	RequestedBy string
	ScanType    ScanType
	Options     StepOptions
}

// StepOptions toggles which optional steps run; each is independently
// skippable (spec §4.H step 2).
type StepOptions struct {
	SkipExtractClauses  bool
	SkipDetectRisks     bool
	SkipDetectUnusual   bool
	SkipApplyStateRules bool
	State               string
	GeneralRules        []domain.Rule
}

// Finding is one risk identified during a scan step.
type Finding struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Severity    domain.Severity `json:"severity"`
}

// ScanResult is the final output of a completed or failed scan.
type ScanResult struct {
	ID          string    `json:"id"`
	ScanID      string    `json:"scanId"`
	Findings    []Finding `json:"findings"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
	Errors      []string  `json:"errors,omitempty"`
}

// job tracks one scan's mutable state, enough to support RetryFailedScan.
type job struct {
	status       Status
	contractText string
	options      StepOptions
	result       ScanResult
}

// Driver runs scan jobs: a state machine around the rule engine with
// stepped progress emitted through the event bus.
type Driver struct {
	events       *events.Manager
	log          zerolog.Logger
	defaultRules []domain.Rule

	mu   sync.Mutex
	jobs map[string]*job
}

// NewDriver constructs a scan Driver. defaultRules are the general
// (non-state-specific) rules evaluated by the "Detect risks" and "Detect
// unusual clauses" steps whenever a request supplies no
// StepOptions.GeneralRules of its own — which is always the case over
// HTTP, since []domain.Rule cannot be populated from a JSON request body.
func NewDriver(em *events.Manager, log zerolog.Logger, defaultRules []domain.Rule) *Driver {
	return &Driver{
		events:       em,
		log:          log.With().Str("component", "scan").Logger(),
		defaultRules: defaultRules,
		jobs:         make(map[string]*job),
	}
}

// NewScanID returns a fresh scan job identifier.
func NewScanID() string { return uuid.NewString() }

// Execute marks the job running, runs the scan job's steps in order, and
// marks it completed. Each optional step's failure is appended to the
// scan's errors[] without aborting the job, so Execute never marks a job
// failed; RetryFailedScan does that when every retry attempt reports errors.
func (d *Driver) Execute(ctx context.Context, scanID, contractText string, opts StepOptions) ScanResult {
	defer utils.OperationTimer("scan.Execute:"+scanID, d.log)()

	d.mu.Lock()
	d.jobs[scanID] = &job{status: StatusRunning, contractText: contractText, options: opts}
	d.mu.Unlock()

	if d.events != nil {
		d.events.EmitTyped(events.ScanStarted, "scan", &events.ScanStartedData{ScanID: scanID})
	}
	progress := scanprogress.NewReporter(d.events, scanID)
	progress.Report("Starting scan", 10)

	var errs []string
	var findings []Finding

	ruleCtx := domain.RuleContext{Contract: domain.Contract{State: opts.State}, State: opts.State, Text: contractText}

	step := func(name string, percent int, skip bool, fn func() ([]Finding, error)) {
		if skip {
			return
		}
		f, err := fn()
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
		}
		findings = append(findings, f...)
		progress.Report(name, percent)
	}

	step("Extract clauses", 20, opts.SkipExtractClauses, func() ([]Finding, error) {
		return nil, nil
	})

	generalRules := opts.GeneralRules
	if len(generalRules) == 0 {
		generalRules = d.defaultRules
	}

	step("Detect risks", 40, opts.SkipDetectRisks, func() ([]Finding, error) {
		engine := rules.NewEngine()
		engine.RegisterAll(generalRules)
		results := engine.Evaluate(ruleCtx)
		return findingsFromFlags(rules.AggregateFlags(results)), nil
	})

	step("Detect unusual clauses", 60, opts.SkipDetectUnusual, func() ([]Finding, error) {
		engine := rules.NewEngine()
		engine.RegisterAll(generalRules)
		results := engine.EvaluateCategory(ruleCtx, domain.CategoryUnusualClause)
		return findingsFromFlags(rules.AggregateFlags(results)), nil
	})

	step("Apply state rules", 80, opts.SkipApplyStateRules, func() ([]Finding, error) {
		if opts.State == "" {
			return nil, nil
		}
		if !stateregistry.IsSupported(opts.State) {
			return nil, fmt.Errorf("state %q is not supported", opts.State)
		}
		engine := rules.NewEngine()
		engine.RegisterAll(stateregistry.CreateRules(opts.State, nil))
		results := engine.Evaluate(ruleCtx)
		return findingsFromFlags(rules.AggregateFlags(results)), nil
	})

	progress.Report("Calculate risk score", 90)
	score := SummarizeSeverity(findings)

	result := ScanResult{ID: scanID, ScanID: scanID, Findings: findings, Score: score, CompletedAt: time.Now(), Errors: errs}

	d.mu.Lock()
	j := d.jobs[scanID]
	j.status = StatusCompleted
	j.result = result
	d.mu.Unlock()

	progress.Report("Scan complete", 100)
	if d.events != nil {
		d.events.EmitTyped(events.ScanCompleted, "scan", &events.ScanCompletedData{ScanID: scanID, Score: score})
	}
	return result
}

func findingsFromFlags(flags []domain.RiskFlag) []Finding {
	out := make([]Finding, 0, len(flags))
	for _, f := range flags {
		out = append(out, Finding{Code: f.Code, Description: f.Description, Severity: f.Severity})
	}
	return out
}

// severityBucketWeight is the scan driver's own severity-penalty reducer
// (25/15/5/2), distinct from scoring.ApplySeverityPenalties's 15/10/5/2
// used by the orchestrator (spec §9 open question).
var severityBucketWeight = map[domain.Severity]int{
	domain.SeverityCritical: 25,
	domain.SeverityHigh:     15,
	domain.SeverityMedium:   5,
	domain.SeverityLow:      2,
}

// SummarizeSeverity sums severity buckets and computes
// score = 100 - (25*critical + 15*high + 5*medium + 2*low), clamped to
// [0,100] (spec §4.H step 3).
func SummarizeSeverity(findings []Finding) int {
	total := 100
	for _, f := range findings {
		total -= severityBucketWeight[f.Severity]
	}
	if total < 0 {
		return 0
	}
	if total > 100 {
		return 100
	}
	return total
}

// RetryFailedScan resets the progress state for scanID and reruns Execute.
func (d *Driver) RetryFailedScan(ctx context.Context, scanID string) (ScanResult, error) {
	d.mu.Lock()
	j, ok := d.jobs[scanID]
	d.mu.Unlock()
	if !ok {
		return ScanResult{}, fmt.Errorf("scan %q not found", scanID)
	}

	var lastResult ScanResult
	err := retry.Do(ctx, d.log, 3, func(ctx context.Context) error {
		lastResult = d.Execute(ctx, scanID, j.contractText, j.options)
		if len(lastResult.Errors) > 0 {
			return fmt.Errorf("scan %s completed with %d step error(s)", scanID, len(lastResult.Errors))
		}
		return nil
	})
	if err != nil {
		d.mu.Lock()
		if j, ok := d.jobs[scanID]; ok {
			j.status = StatusFailed
		}
		d.mu.Unlock()
		if d.events != nil {
			d.events.EmitTyped(events.ScanFailed, "scan", &events.ScanFailedData{ScanID: scanID, Error: err.Error()})
		}
		return lastResult, err
	}
	return lastResult, nil
}

// BatchResult is the outcome of a sequential batch of scans.
type BatchResult struct {
	Completed []ScanResult
	Failed    []BatchFailure
}

// BatchFailure records one failed scan of a batch run.
type BatchFailure struct {
	ScanID string
	Error  string
}

// ExecuteBatch runs scans sequentially, recording each failure without
// aborting the batch (same skipping/recording policy as analysis batch).
func (d *Driver) ExecuteBatch(ctx context.Context, scans map[string]string, opts StepOptions) BatchResult {
	var result BatchResult
	for scanID, text := range scans {
		if err := ctx.Err(); err != nil {
			result.Failed = append(result.Failed, BatchFailure{ScanID: scanID, Error: err.Error()})
			continue
		}
		r := d.Execute(ctx, scanID, text, opts)
		if len(r.Errors) > 0 {
			result.Failed = append(result.Failed, BatchFailure{ScanID: scanID, Error: r.Errors[0]})
			continue
		}
		result.Completed = append(result.Completed, r)
	}
	return result
}

// Progress returns the current status and last result (if any) for scanID.
func (d *Driver) Progress(scanID string) (Status, ScanResult, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	j, ok := d.jobs[scanID]
	if !ok {
		return "", ScanResult{}, false
	}
	return j.status, j.result, true
}
