package state

import (
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/rules"
	"github.com/prabhnoor12/cleardeal-ai/internal/utils"
)

type nyPCDS struct{ rules.Base }

// NewNYPCDS checks for the New York Property Condition Disclosure Statement.
func NewNYPCDS() domain.Rule {
	return &nyPCDS{rules.NewBase("NY_PCDS", "New York PCDS", "Checks for the Property Condition Disclosure Statement required in New York.", domain.CategoryStateSpecific, domain.SeverityHigh)}
}

func (r *nyPCDS) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if matchesDisclosure(ctx, "property condition disclosure statement", "pcds") || utils.ContainsKeyword(ctx.Text, "property condition disclosure statement") {
		return r.Pass("Property Condition Disclosure Statement present")
	}
	return r.Fail("Property Condition Disclosure Statement not found",
		r.Flag("MISSING", "New York Property Condition Disclosure Statement (PCDS) was not found", r.GetSeverity(ctx.State)))
}

type nyLeadPaint struct{ rules.Base }

// NewNYLeadPaint checks for the federal lead-paint disclosure.
func NewNYLeadPaint() domain.Rule {
	return &nyLeadPaint{rules.NewBase("NY_LEAD_PAINT", "New York Lead Paint Disclosure", "Checks for the lead-based paint disclosure.", domain.CategoryStateSpecific, domain.SeverityHigh)}
}

func (r *nyLeadPaint) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if matchesDisclosure(ctx, "lead-based paint", "lead paint") || utils.ContainsKeyword(ctx.Text, "lead-based paint") || utils.ContainsKeyword(ctx.Text, "lead paint") {
		return r.Pass("lead paint disclosure present")
	}
	return r.Fail("lead paint disclosure not found",
		r.Flag("MISSING", "Lead-based paint disclosure was not found", r.GetSeverity(ctx.State)))
}

type nyAttorneyReview struct{ rules.Base }

// NewNYAttorneyReview checks for the New York attorney-review contingency.
func NewNYAttorneyReview() domain.Rule {
	return &nyAttorneyReview{rules.NewBase("NY_ATTORNEY_REVIEW", "New York Attorney Review", "Checks for the attorney-review contingency period.", domain.CategoryStateSpecific, domain.SeverityCritical)}
}

func (r *nyAttorneyReview) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if utils.ContainsKeyword(ctx.Text, "attorney review") {
		return r.Pass("attorney review contingency present")
	}
	return r.Fail("no attorney review contingency found",
		r.Flag("MISSING", "No attorney-review contingency was found in the contract", r.GetSeverity(ctx.State)))
}

type nyBoardApproval struct{ rules.Base }

// NewNYBoardApproval checks that co-op purchases carry a board-approval contingency.
func NewNYBoardApproval() domain.Rule {
	return &nyBoardApproval{rules.NewBase("NY_BOARD_APPROVAL", "New York Board Approval", "Checks that a co-op purchase carries a board-approval contingency.", domain.CategoryStateSpecific, domain.SeverityCritical)}
}

func (r *nyBoardApproval) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if !utils.ContainsKeyword(ctx.Text, "co-op") && !utils.ContainsKeyword(ctx.Text, "coop") {
		return r.Pass("not a co-op purchase; board approval not required")
	}
	if utils.ContainsKeyword(ctx.Text, "board approval") {
		return r.Pass("board approval contingency present")
	}
	return r.Fail("co-op purchase without a board approval contingency",
		r.Flag("NO_BOARD_CONTINGENCY", "Co-op purchase has no board-approval contingency", r.GetSeverity(ctx.State)))
}

type nyMansionTax struct{ rules.Base }

// NewNYMansionTax checks for acknowledgment of New York's mansion tax on
// purchases at or above the threshold price.
func NewNYMansionTax() domain.Rule {
	return &nyMansionTax{rules.NewBase("NY_MANSION_TAX", "New York Mansion Tax", "Checks for acknowledgment of the mansion tax on high-value purchases.", domain.CategoryStateSpecific, domain.SeverityLow)}
}

func (r *nyMansionTax) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	price, ok := utils.ExtractAmountNear(ctx.Text, "purchase price")
	if !ok || price < 1000000 {
		return r.Pass("purchase price below the mansion tax threshold")
	}
	if utils.ContainsKeyword(ctx.Text, "mansion tax") {
		return r.Pass("mansion tax acknowledged")
	}
	return r.Fail("purchase at or above $1,000,000 without mansion tax acknowledgment",
		r.Flag("NOT_ACKNOWLEDGED", "Purchase price is at or above the mansion tax threshold but the tax is not acknowledged", r.GetSeverity(ctx.State)))
}

type nyDetectors struct{ rules.Base }

// NewNYDetectors checks for the smoke/carbon-monoxide detector compliance statement.
func NewNYDetectors() domain.Rule {
	return &nyDetectors{rules.NewBase("NY_DETECTORS", "New York Detector Compliance", "Checks for smoke/carbon monoxide detector compliance statement.", domain.CategoryStateSpecific, domain.SeverityMedium)}
}

func (r *nyDetectors) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if utils.ContainsAny(ctx.Text, "smoke detector", "carbon monoxide detector") {
		return r.Pass("detector compliance statement present")
	}
	return r.Fail("detector compliance statement not found",
		r.Flag("MISSING", "Smoke/carbon monoxide detector compliance statement was not found", r.GetSeverity(ctx.State)))
}

// NewYork returns the New York-specific rule set: PCDS, Lead Paint,
// Attorney Review, Board Approval, Mansion Tax, Detectors.
func NewYork(cfg *domain.RuleConfig) []domain.Rule {
	return configureAll(cfg, NewNYPCDS(), NewNYLeadPaint(), NewNYAttorneyReview(), NewNYBoardApproval(), NewNYMansionTax(), NewNYDetectors())
}
