// Package scoring implements the pure scoring-engine algorithm of spec
// §4.D: a weighted combination of six dimension counts into a bounded
// [0,100] score, plus the severity-penalty reducers applied by the
// orchestrator and the scan driver.
package scoring

import (
	"fmt"
	"math"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// RiskLevel is the five-level palette derived from a score.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelModerate RiskLevel = "moderate"
	RiskLevelElevated RiskLevel = "elevated"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// Label returns the human risk-level label for a score.
func Label(score int) string {
	switch {
	case score >= 80:
		return "Low"
	case score >= 60:
		return "Moderate"
	case score >= 40:
		return "Elevated"
	case score >= 20:
		return "High"
	default:
		return "Critical"
	}
}

// Level returns the five-level palette value for a score.
func Level(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskLevelLow
	case score >= 60:
		return RiskLevelModerate
	case score >= 40:
		return RiskLevelElevated
	case score >= 20:
		return RiskLevelHigh
	default:
		return RiskLevelCritical
	}
}

func clamp(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

// Calculate runs the deterministic scoring algorithm of spec §4.D steps 1-4.
// Severity penalties (step 3) are NOT applied here; callers apply
// ApplySeverityPenalties to the result separately, per the two distinct
// reducer policy documented in DESIGN.md.
func Calculate(in domain.ScoreEngineInput) domain.ScoreEngineOutput {
	w := in.Weights
	if w == (domain.ScoreWeights{}) {
		w = domain.DefaultScoreWeights()
	}

	clauseScore := float64(len(in.Clauses)) * w.Clause
	disclosureScore := float64(len(in.DisclosuresProvided)) * w.Disclosure
	addendumScore := float64(len(in.AddendaIncluded)) * w.Addendum
	unusualClauseScore := float64(len(in.UnusualClauses)) * w.UnusualClause
	missingDocumentScore := float64(len(in.MissingDocuments)) * w.MissingDocument
	stateComplianceScore := w.StateCompliance

	base := 100 - (clauseScore + unusualClauseScore + missingDocumentScore)
	totalScore := clamp(base)

	breakdown := map[string]float64{
		domain.BreakdownClauseScore:          clauseScore,
		domain.BreakdownDisclosureScore:      disclosureScore,
		domain.BreakdownAddendumScore:        addendumScore,
		domain.BreakdownUnusualClauseScore:   unusualClauseScore,
		domain.BreakdownMissingDocumentScore: missingDocumentScore,
		domain.BreakdownStateComplianceScore: stateComplianceScore,
	}

	out := domain.ScoreEngineOutput{
		ContractID: in.ContractID,
		TotalScore: totalScore,
		Breakdown:  breakdown,
		Weights:    w,
		Flagged:    totalScore < 60,
	}
	if out.Flagged {
		out.Notes = append(out.Notes, "High risk detected")
	}
	return out
}

// severityPenalty is the per-severity point deduction used by
// ApplySeverityPenalties: the orchestrator's reducer (spec §4.D step 3).
var severityPenalty = map[domain.Severity]int{
	domain.SeverityCritical: 15,
	domain.SeverityHigh:     10,
	domain.SeverityMedium:   5,
	domain.SeverityLow:      2,
}

// ApplySeverityPenalties subtracts a per-flag severity penalty from
// baseScore and re-clamps to [0,100]. This is the orchestrator's reducer,
// distinct from scan.SummarizeSeverity's coefficients (spec §9 open
// question: two distinct reducers, kept as two named functions).
func ApplySeverityPenalties(baseScore int, flags []domain.RiskFlag) int {
	total := baseScore
	for _, f := range flags {
		total -= severityPenalty[f.Severity]
	}
	if total < 0 {
		return 0
	}
	if total > 100 {
		return 100
	}
	return total
}

// BreakdownString pretty-prints a breakdown map for logging/debugging.
func BreakdownString(b map[string]float64) string {
	return fmt.Sprintf("clause=%.2f disclosure=%.2f addendum=%.2f unusual=%.2f missingDoc=%.2f stateCompliance=%.2f",
		b[domain.BreakdownClauseScore], b[domain.BreakdownDisclosureScore], b[domain.BreakdownAddendumScore],
		b[domain.BreakdownUnusualClauseScore], b[domain.BreakdownMissingDocumentScore], b[domain.BreakdownStateComplianceScore])
}
