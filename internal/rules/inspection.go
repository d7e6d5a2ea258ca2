package rules

import (
	"fmt"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/utils"
)

// InspectionContingency fails MISSING unless a cash-equivalent purchase;
// WAIVED if "waive"+"inspection"; AS_IS if "as-is" appears alone.
type InspectionContingency struct{ Base }

func NewInspectionContingency() *InspectionContingency {
	return &InspectionContingency{NewBase("INSPECTION_CONTINGENCY", "Inspection Contingency",
		"Verifies the contract carries an inspection contingency.",
		domain.CategoryContingency, domain.SeverityCritical)}
}

func (r *InspectionContingency) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if isCashTransaction(ctx.Text) {
		return r.Pass("cash transaction; inspection contingency not required")
	}
	if !utils.ContainsKeyword(ctx.Text, "inspection") {
		return r.Fail("no inspection contingency found",
			r.Flag("MISSING", "Contract lacks an inspection contingency", r.GetSeverity(ctx.State)))
	}
	if utils.ContainsAll(ctx.Text, "waive", "inspection") {
		return r.Fail("inspection contingency appears waived",
			r.Flag("WAIVED", "Inspection contingency appears to be waived", r.GetSeverity(ctx.State)))
	}
	if utils.ContainsKeyword(ctx.Text, "as-is") || utils.ContainsKeyword(ctx.Text, "as is") {
		return r.Fail("property sold as-is",
			r.Flag("AS_IS", "Property is being sold as-is", domain.SeverityHigh))
	}
	return r.Pass("inspection contingency present")
}

// InspectionTimeline extracts the inspection period day count.
type InspectionTimeline struct{ Base }

func NewInspectionTimeline() *InspectionTimeline {
	return &InspectionTimeline{NewBase("INSPECTION_TIMELINE", "Inspection Timeline",
		"Checks the inspection period against a reasonable range.",
		domain.CategoryTimeline, domain.SeverityMedium)}
}

func (r *InspectionTimeline) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	days, found := utils.ExtractDaysNear(ctx.Text, "inspection", 60)
	if !found {
		return r.Fail("no inspection timeline found",
			r.Flag("NO_TIMELINE", "No inspection timeline could be determined", r.GetSeverity(ctx.State)))
	}
	minDays := r.Threshold("min_days", 7)
	maxDays := r.Threshold("max_days", 17)
	if float64(days) < minDays {
		return r.Fail(fmt.Sprintf("inspection period is %d days", days),
			r.Flag("TOO_SHORT", fmt.Sprintf("Inspection period of %d days is shorter than recommended", days), r.GetSeverity(ctx.State)))
	}
	if float64(days) > maxDays {
		return r.Fail(fmt.Sprintf("inspection period is %d days", days),
			r.Flag("TOO_LONG", fmt.Sprintf("Inspection period of %d days is longer than typical", days), r.GetSeverity(ctx.State)))
	}
	return r.Pass(fmt.Sprintf("inspection period of %d days is within range", days))
}

// RequiredInspections flags the absence of home and pest inspections independently.
type RequiredInspections struct{ Base }

func NewRequiredInspections() *RequiredInspections {
	return &RequiredInspections{NewBase("REQUIRED_INSPECTIONS", "Required Inspections",
		"Checks for mention of home and pest inspections.",
		domain.CategoryInspection, domain.SeverityMedium)}
}

func (r *RequiredInspections) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	var flags []domain.RiskFlag
	if !utils.ContainsKeyword(ctx.Text, "home inspection") {
		flags = append(flags, r.Flag("NO_HOME_INSPECTION", "No mention of a home inspection", r.GetSeverity(ctx.State)))
	}
	if !utils.ContainsKeyword(ctx.Text, "pest inspection") {
		flags = append(flags, r.Flag("NO_PEST_INSPECTION", "No mention of a pest inspection", r.GetSeverity(ctx.State)))
	}
	if len(flags) == 0 {
		return r.Pass("both home and pest inspections mentioned")
	}
	return r.Fail("one or more required inspections not mentioned", flags...)
}

// InspectionRepairTerms flags missing repair cap, risky seller-liability
// phrases, and missing credit-in-lieu-of-repair options.
type InspectionRepairTerms struct{ Base }

func NewInspectionRepairTerms() *InspectionRepairTerms {
	return &InspectionRepairTerms{NewBase("INSPECTION_REPAIR_TERMS", "Inspection Repair Terms",
		"Checks repair-related terms following an inspection.",
		domain.CategoryInspection, domain.SeverityMedium)}
}

func (r *InspectionRepairTerms) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	var flags []domain.RiskFlag
	if !utils.ContainsKeyword(ctx.Text, "repair cap") && !utils.ContainsKeyword(ctx.Text, "repair limit") {
		flags = append(flags, r.Flag("NO_REPAIR_CAP", "No cap on repair costs specified", domain.SeverityLow))
	}
	if utils.ContainsAny(ctx.Text, "seller not responsible", "seller has no obligation") {
		flags = append(flags, r.Flag("SELLER_NOT_RESPONSIBLE", "Seller disclaims responsibility for repairs", domain.SeverityHigh))
	}
	if !utils.ContainsKeyword(ctx.Text, "credit in lieu") && !utils.ContainsKeyword(ctx.Text, "repair credit") {
		flags = append(flags, r.Flag("NO_CREDIT_OPTION", "No credit-in-lieu-of-repair option mentioned", domain.SeverityLow))
	}
	if len(flags) == 0 {
		return r.Pass("repair terms adequately addressed")
	}
	return r.Fail("repair terms concerns found", flags...)
}
