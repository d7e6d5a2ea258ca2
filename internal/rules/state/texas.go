package state

import (
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/rules"
	"github.com/prabhnoor12/cleardeal-ai/internal/utils"
)

type txSellerDisclosure struct{ rules.Base }

// NewTXSellerDisclosure checks for the Texas Seller's Disclosure Notice.
func NewTXSellerDisclosure() domain.Rule {
	return &txSellerDisclosure{rules.NewBase("TX_SELLER_DISCLOSURE", "Texas Seller's Disclosure", "Checks for the Seller's Disclosure Notice required in Texas.", domain.CategoryStateSpecific, domain.SeverityHigh)}
}

func (r *txSellerDisclosure) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if matchesDisclosure(ctx, "seller's disclosure", "sellers disclosure") || utils.ContainsKeyword(ctx.Text, "seller's disclosure notice") {
		return r.Pass("Seller's Disclosure Notice present")
	}
	return r.Fail("Seller's Disclosure Notice not found",
		r.Flag("MISSING", "Texas Seller's Disclosure Notice was not found", r.GetSeverity(ctx.State)))
}

type txOptionPeriod struct{ rules.Base }

// NewTXOptionPeriod checks for the Texas option-period termination right.
func NewTXOptionPeriod() domain.Rule {
	return &txOptionPeriod{rules.NewBase("TX_OPTION_PERIOD", "Texas Option Period", "Checks for the option period giving the buyer an unrestricted termination right.", domain.CategoryStateSpecific, domain.SeverityMedium)}
}

func (r *txOptionPeriod) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if utils.ContainsKeyword(ctx.Text, "option period") || utils.ContainsKeyword(ctx.Text, "option fee") {
		return r.Pass("option period present")
	}
	return r.Fail("no option period found",
		r.Flag("MISSING", "No Texas option period was found in the contract", r.GetSeverity(ctx.State)))
}

type txMudPid struct{ rules.Base }

// NewTXMudPid checks for MUD/PID special-district disclosure.
func NewTXMudPid() domain.Rule {
	return &txMudPid{rules.NewBase("TX_MUD_PID", "Texas MUD/PID", "Checks for Municipal Utility District / Public Improvement District disclosure.", domain.CategoryStateSpecific, domain.SeverityMedium)}
}

func (r *txMudPid) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if !utils.ContainsAny(ctx.Text, "mud", "municipal utility district", "public improvement district", "pid") {
		return r.Pass("no MUD/PID district indicated")
	}
	if matchesDisclosure(ctx, "mud", "pid", "municipal utility district", "public improvement district") {
		return r.Pass("MUD/PID disclosure present")
	}
	return r.Fail("property is in a MUD/PID district without disclosure",
		r.Flag("NO_DISCLOSURE", "Property appears to be in a MUD/PID district but no disclosure was provided", r.GetSeverity(ctx.State)))
}

type txHOA struct{ rules.Base }

// NewTXHOA checks for Texas HOA addendum / resale certificate.
func NewTXHOA() domain.Rule {
	return &txHOA{rules.NewBase("TX_HOA", "Texas HOA Addendum", "Checks for the HOA addendum and resale certificate when a homeowners association is involved.", domain.CategoryStateSpecific, domain.SeverityMedium)}
}

func (r *txHOA) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if !utils.ContainsAny(ctx.Text, "hoa", "homeowners association", "homeowner's association") {
		return r.Pass("no HOA involvement detected")
	}
	if matchesDisclosure(ctx, "hoa", "resale certificate") {
		return r.Pass("HOA addendum/resale certificate present")
	}
	return r.Fail("HOA involvement detected without an addendum",
		r.Flag("MISSING", "HOA involvement detected but no HOA addendum/resale certificate was provided", r.GetSeverity(ctx.State)))
}

type txSurvey struct{ rules.Base }

// NewTXSurvey checks for a property survey.
func NewTXSurvey() domain.Rule {
	return &txSurvey{rules.NewBase("TX_SURVEY", "Texas Survey", "Checks for a property survey.", domain.CategoryStateSpecific, domain.SeverityMedium)}
}

func (r *txSurvey) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if utils.ContainsKeyword(ctx.Text, "survey") {
		return r.Pass("survey present")
	}
	return r.Fail("no survey found",
		r.Flag("MISSING", "No property survey was found in the contract", r.GetSeverity(ctx.State)))
}

type txTitle struct{ rules.Base }

// NewTXTitle checks for title policy/title company language.
func NewTXTitle() domain.Rule {
	return &txTitle{rules.NewBase("TX_TITLE", "Texas Title Policy", "Checks for a title policy / title company reference.", domain.CategoryStateSpecific, domain.SeverityHigh)}
}

func (r *txTitle) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if utils.ContainsAny(ctx.Text, "title policy", "title company", "title insurance") {
		return r.Pass("title policy/title company present")
	}
	return r.Fail("no title policy or title company found",
		r.Flag("MISSING", "No title policy or title company reference was found", r.GetSeverity(ctx.State)))
}

// Texas returns the Texas-specific rule set: Seller Disclosure, Option
// Period, MUD/PID, HOA, Survey, Title.
func Texas(cfg *domain.RuleConfig) []domain.Rule {
	return configureAll(cfg, NewTXSellerDisclosure(), NewTXOptionPeriod(), NewTXMudPid(), NewTXHOA(), NewTXSurvey(), NewTXTitle())
}
