package analysis

import (
	"context"
	"time"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// BatchFailure records one failed item of a batch analysis run.
type BatchFailure struct {
	ContractID string `json:"contractId"`
	Error      string `json:"error"`
}

// BatchResult is the outcome of AnalyzeBatch: per-item success/failure
// breakdown plus total wall-clock time (spec invariant 10:
// len(completed)+len(failed) == len(input)).
type BatchResult struct {
	Completed []RiskAnalysisResult `json:"completed"`
	Failed    []BatchFailure       `json:"failed"`
	TotalTime time.Duration        `json:"totalTime"`
}

// RiskAnalysisResult pairs a contract id with its analysis for batch output.
type RiskAnalysisResult struct {
	ContractID string              `json:"contractId"`
	Analysis   domain.RiskAnalysis `json:"analysis"`
}

// AnalyzeBatch iterates ids sequentially, recording each failure without
// aborting the batch. Cancellation is checked between items; an in-flight
// item is allowed to complete.
func (o *Orchestrator) AnalyzeBatch(ctx context.Context, ids []string, opts AnalysisOptions) BatchResult {
	start := time.Now()
	result := BatchResult{}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			result.Failed = append(result.Failed, BatchFailure{ContractID: id, Error: err.Error()})
			continue
		}
		a, err := o.Analyze(ctx, id, opts)
		if err != nil {
			result.Failed = append(result.Failed, BatchFailure{ContractID: id, Error: err.Error()})
			continue
		}
		result.Completed = append(result.Completed, RiskAnalysisResult{ContractID: id, Analysis: a})
	}

	result.TotalTime = time.Since(start)
	return result
}
