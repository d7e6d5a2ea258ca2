package rules

import (
	"fmt"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/utils"
)

// EarnestMoneyAmount extracts the EMD and purchase-price amounts and flags
// the resulting percentage as too low or too high.
type EarnestMoneyAmount struct{ Base }

func NewEarnestMoneyAmount() *EarnestMoneyAmount {
	return &EarnestMoneyAmount{NewBase("EMD_AMOUNT", "Earnest Money Amount",
		"Checks the earnest money deposit as a percentage of purchase price.",
		domain.CategoryEarnestMoney, domain.SeverityMedium)}
}

func (r *EarnestMoneyAmount) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	emd, okEMD := utils.ExtractAmountNear(ctx.Text, "earnest money")
	price, okPrice := utils.ExtractAmountNear(ctx.Text, "purchase price")
	if !okEMD || !okPrice || price == 0 {
		return r.Pass("could not determine earnest money percentage")
	}
	percentage := emd / price * 100
	minPercent := r.Threshold("min_percent", 1)
	maxPercent := r.Threshold("max_percent", 3)
	if percentage < minPercent {
		return r.Fail(fmt.Sprintf("earnest money is %.2f%% of purchase price", percentage),
			r.Flag("TOO_LOW", fmt.Sprintf("Earnest money deposit of %.2f%% is below the typical range", percentage), r.GetSeverity(ctx.State)))
	}
	if percentage > maxPercent {
		return r.Fail(fmt.Sprintf("earnest money is %.2f%% of purchase price", percentage),
			r.Flag("TOO_HIGH", fmt.Sprintf("Earnest money deposit of %.2f%% is above the typical range", percentage), r.GetSeverity(ctx.State)))
	}
	return r.Pass(fmt.Sprintf("earnest money of %.2f%% is within the typical range", percentage))
}

// EarnestMoneyTimeline flags a deposit window longer than max_days, or missing.
type EarnestMoneyTimeline struct{ Base }

func NewEarnestMoneyTimeline() *EarnestMoneyTimeline {
	return &EarnestMoneyTimeline{NewBase("EMD_TIMELINE", "Earnest Money Timeline",
		"Checks the window for depositing earnest money.",
		domain.CategoryTimeline, domain.SeverityMedium)}
}

func (r *EarnestMoneyTimeline) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	days, found := utils.ExtractDaysNear(ctx.Text, "earnest money", 60)
	if !found {
		return r.Fail("no earnest money deposit timeline found",
			r.Flag("TIMELINE_MISSING", "No deadline specified for depositing earnest money", r.GetSeverity(ctx.State)))
	}
	maxDays := r.Threshold("max_days", 7)
	if float64(days) > maxDays {
		return r.Fail(fmt.Sprintf("earnest money deposit window is %d days", days),
			r.Flag("TIMELINE_LONG", fmt.Sprintf("Earnest money deposit window of %d days is longer than typical", days), r.GetSeverity(ctx.State)))
	}
	return r.Pass(fmt.Sprintf("earnest money deposit window of %d days is within range", days))
}

// EscrowHolder flags a missing escrow/title-company reference or a risky holder.
type EscrowHolder struct{ Base }

func NewEscrowHolder() *EscrowHolder {
	return &EscrowHolder{NewBase("ESCROW_HOLDER", "Escrow Holder",
		"Verifies earnest money is held by a neutral escrow or title company.",
		domain.CategoryEarnestMoney, domain.SeverityHigh)}
}

func (r *EscrowHolder) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if !utils.ContainsAny(ctx.Text, "escrow", "title company") {
		return r.Fail("no escrow or title company reference found",
			r.Flag("NO_ESCROW_HOLDER", "No escrow or title company is named to hold earnest money", r.GetSeverity(ctx.State)))
	}
	if utils.ContainsKeyword(ctx.Text, "seller holds") || utils.ContainsKeyword(ctx.Text, "direct to seller") {
		return r.Fail("earnest money held directly by seller",
			r.Flag("RISKY_ESCROW", "Earnest money is held directly by the seller rather than a neutral party", domain.SeverityCritical))
	}
	if utils.ContainsKeyword(ctx.Text, "agent holds") {
		return r.Fail("earnest money held by an agent",
			r.Flag("RISKY_ESCROW", "Earnest money is held by an agent rather than a neutral escrow holder", domain.SeverityHigh))
	}
	return r.Pass("earnest money held by a neutral escrow or title company")
}

// EMDRefundConditions flags missing, non-refundable, or liquidated-damages terms.
type EMDRefundConditions struct{ Base }

func NewEMDRefundConditions() *EMDRefundConditions {
	return &EMDRefundConditions{NewBase("EMD_REFUND", "EMD Refund Conditions",
		"Checks the conditions under which earnest money is refundable.",
		domain.CategoryEarnestMoney, domain.SeverityHigh)}
}

func (r *EMDRefundConditions) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if utils.ContainsKeyword(ctx.Text, "non-refundable") || utils.ContainsKeyword(ctx.Text, "nonrefundable") {
		return r.Fail("earnest money is non-refundable",
			r.Flag("NON_REFUNDABLE", "Earnest money deposit is non-refundable", domain.SeverityCritical))
	}
	if utils.ContainsKeyword(ctx.Text, "liquidated damages") {
		return r.Fail("earnest money serves as liquidated damages",
			r.Flag("LIQUIDATED_DAMAGES", "Earnest money functions as liquidated damages on default", domain.SeverityMedium))
	}
	if !utils.ContainsAny(ctx.Text, "refund", "returned to buyer") {
		return r.Fail("no refund terms specified",
			r.Flag("NO_REFUND_TERMS", "No conditions for refunding earnest money are specified", r.GetSeverity(ctx.State)))
	}
	return r.Pass("earnest money refund conditions are specified")
}
