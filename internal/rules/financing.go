package rules

import (
	"fmt"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/utils"
)

func isCashTransaction(text string) bool {
	return utils.ContainsAny(text, "all cash", "no financing")
}

// FinancingContingency fails MISSING unless the contract is cash; adds
// WAIVED if "waive" co-occurs with "financing".
type FinancingContingency struct{ Base }

func NewFinancingContingency() *FinancingContingency {
	return &FinancingContingency{NewBase("FIN_CONTINGENCY", "Financing Contingency",
		"Verifies the contract carries a financing contingency unless the purchase is all-cash.",
		domain.CategoryFinancing, domain.SeverityCritical)}
}

func (r *FinancingContingency) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if isCashTransaction(ctx.Text) {
		return r.Pass("cash transaction; financing contingency not required")
	}
	if !utils.ContainsKeyword(ctx.Text, "financing") {
		return r.Fail("no financing contingency found",
			r.Flag("MISSING", "Contract lacks a financing contingency", r.GetSeverity(ctx.State)))
	}
	if utils.ContainsAll(ctx.Text, "waive", "financing") {
		return r.Fail("financing contingency appears waived",
			r.Flag("WAIVED", "Financing contingency appears to be waived", r.GetSeverity(ctx.State)))
	}
	return r.Pass("financing contingency present")
}

// FinancingTimeline extracts a day count near "financing contingency" and
// flags it as too short or too long against configurable thresholds.
type FinancingTimeline struct{ Base }

func NewFinancingTimeline() *FinancingTimeline {
	return &FinancingTimeline{NewBase("FIN_TIMELINE", "Financing Timeline",
		"Checks the financing contingency period against a reasonable range.",
		domain.CategoryTimeline, domain.SeverityMedium)}
}

func (r *FinancingTimeline) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	days, found := utils.ExtractDaysNear(ctx.Text, "financing contingency", 60)
	if !found {
		return r.Pass("no financing timeline found to evaluate")
	}
	minDays := r.Threshold("min_days", 17)
	maxDays := r.Threshold("max_days", 30)
	if float64(days) < minDays {
		return r.Fail(fmt.Sprintf("financing contingency period is %d days", days),
			r.Flag("TOO_SHORT", fmt.Sprintf("Financing contingency period of %d days is shorter than recommended", days), r.GetSeverity(ctx.State)))
	}
	if float64(days) > maxDays {
		return r.Fail(fmt.Sprintf("financing contingency period is %d days", days),
			r.Flag("TOO_LONG", fmt.Sprintf("Financing contingency period of %d days is longer than typical", days), r.GetSeverity(ctx.State)))
	}
	return r.Pass(fmt.Sprintf("financing contingency period of %d days is within range", days))
}

// LoanTerms flags risky loan structures: high-LTV, adjustable,
// interest-only, balloon, negative amortization, hard money.
type LoanTerms struct{ Base }

func NewLoanTerms() *LoanTerms {
	return &LoanTerms{NewBase("LOAN_TERMS", "Loan Terms",
		"Flags risky loan structures mentioned in the contract text.",
		domain.CategoryFinancing, domain.SeverityMedium)}
}

func (r *LoanTerms) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	var flags []domain.RiskFlag
	if ltv, ok := extractLTV(ctx.Text); ok && ltv > r.Threshold("max_ltv", 95) {
		flags = append(flags, r.Flag("HIGH_LTV", fmt.Sprintf("Loan-to-value ratio of %.0f%% exceeds 95%%", ltv), r.GetSeverity(ctx.State)))
	}
	if utils.ContainsKeyword(ctx.Text, "adjustable") {
		flags = append(flags, r.Flag("ADJUSTABLE_RATE", "Loan uses an adjustable interest rate", r.GetSeverity(ctx.State)))
	}
	if utils.ContainsKeyword(ctx.Text, "interest-only") || utils.ContainsKeyword(ctx.Text, "interest only") {
		flags = append(flags, r.Flag("INTEREST_ONLY", "Loan is interest-only", r.GetSeverity(ctx.State)))
	}
	if utils.ContainsKeyword(ctx.Text, "balloon") {
		flags = append(flags, r.Flag("BALLOON_PAYMENT", "Loan carries a balloon payment", domain.SeverityHigh))
	}
	if utils.ContainsKeyword(ctx.Text, "negative amortization") {
		flags = append(flags, r.Flag("NEGATIVE_AMORTIZATION", "Loan allows negative amortization", domain.SeverityHigh))
	}
	if utils.ContainsKeyword(ctx.Text, "hard money") {
		flags = append(flags, r.Flag("HARD_MONEY", "Financing is from a hard-money lender", domain.SeverityHigh))
	}
	if len(flags) == 0 {
		return r.Pass("no risky loan terms detected")
	}
	return r.Fail("risky loan terms detected", flags...)
}

var ltvRe = []string{`(\d{1,3})\s*%\s*ltv`, `ltv\s*(?:of|:)?\s*(\d{1,3})\s*%`}

func extractLTV(text string) (float64, bool) {
	for _, pattern := range ltvRe {
		if m := utils.FindMatches(text, pattern); len(m) > 0 {
			if v, ok := utils.ExtractFirstAmount("$" + onlyDigits(m[0])); ok {
				return v, true
			}
		}
	}
	return 0, false
}

func onlyDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// PreApproval flags missing or partial buyer financing qualification.
type PreApproval struct{ Base }

func NewPreApproval() *PreApproval {
	return &PreApproval{NewBase("PRE_APPROVAL", "Pre-Approval",
		"Verifies the buyer has pre-approval rather than only pre-qualification.",
		domain.CategoryFinancing, domain.SeverityMedium)}
}

func (r *PreApproval) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if isCashTransaction(ctx.Text) {
		return r.Pass("cash transaction; pre-approval not applicable")
	}
	hasPreApproval := utils.ContainsKeyword(ctx.Text, "pre-approval") || utils.ContainsKeyword(ctx.Text, "preapproval")
	hasPreQual := utils.ContainsKeyword(ctx.Text, "pre-qualification") || utils.ContainsKeyword(ctx.Text, "prequalification")
	if !hasPreApproval && !hasPreQual {
		return r.Fail("no mention of pre-approval or pre-qualification",
			r.Flag("NO_PREAPPROVAL", "Buyer financing qualification is not documented", r.GetSeverity(ctx.State)))
	}
	if !hasPreApproval && hasPreQual {
		return r.Fail("only pre-qualification mentioned",
			r.Flag("PREQUAL_ONLY", "Buyer has only a pre-qualification, not a pre-approval", domain.SeverityLow))
	}
	return r.Pass("buyer pre-approval documented")
}

// AppraisalContingency fails MISSING or WAIVED unless the purchase is cash.
type AppraisalContingency struct{ Base }

func NewAppraisalContingency() *AppraisalContingency {
	return &AppraisalContingency{NewBase("APPRAISAL_CONTINGENCY", "Appraisal Contingency",
		"Verifies the contract carries an appraisal contingency.",
		domain.CategoryContingency, domain.SeverityHigh)}
}

func (r *AppraisalContingency) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if isCashTransaction(ctx.Text) {
		return r.Pass("cash transaction; appraisal contingency not required")
	}
	if !utils.ContainsKeyword(ctx.Text, "appraisal") {
		return r.Fail("no appraisal contingency found",
			r.Flag("MISSING", "Contract lacks an appraisal contingency", r.GetSeverity(ctx.State)))
	}
	if utils.ContainsAll(ctx.Text, "waive", "appraisal") {
		return r.Fail("appraisal contingency appears waived",
			r.Flag("WAIVED", "Appraisal contingency appears to be waived", r.GetSeverity(ctx.State)))
	}
	return r.Pass("appraisal contingency present")
}
