package state

import (
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/rules"
	"github.com/prabhnoor12/cleardeal-ai/internal/utils"
)

type flSellerDisclosure struct{ rules.Base }

// NewFLSellerDisclosure checks for the Florida Seller's Property Disclosure.
func NewFLSellerDisclosure() domain.Rule {
	return &flSellerDisclosure{rules.NewBase("FL_SELLER_DISCLOSURE", "Florida Seller's Disclosure", "Checks for the Seller's Property Disclosure required in Florida.", domain.CategoryStateSpecific, domain.SeverityHigh)}
}

func (r *flSellerDisclosure) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if matchesDisclosure(ctx, "seller's property disclosure", "sellers property disclosure") || utils.ContainsKeyword(ctx.Text, "seller's property disclosure") {
		return r.Pass("Seller's Property Disclosure present")
	}
	return r.Fail("Seller's Property Disclosure not found",
		r.Flag("MISSING", "Florida Seller's Property Disclosure was not found", r.GetSeverity(ctx.State)))
}

type flFloodZone struct{ rules.Base }

// NewFLFloodZone checks for flood-zone disclosure.
func NewFLFloodZone() domain.Rule {
	return &flFloodZone{rules.NewBase("FL_FLOOD_ZONE", "Florida Flood Zone", "Checks for flood zone disclosure.", domain.CategoryStateSpecific, domain.SeverityHigh)}
}

func (r *flFloodZone) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if matchesDisclosure(ctx, "flood zone", "flood disclosure") || utils.ContainsKeyword(ctx.Text, "flood zone") {
		return r.Pass("flood zone disclosure present")
	}
	return r.Fail("flood zone disclosure not found",
		r.Flag("MISSING", "Florida flood zone disclosure was not found", r.GetSeverity(ctx.State)))
}

type flHOA struct{ rules.Base }

// NewFLHOA checks for Florida HOA/condo association disclosure.
func NewFLHOA() domain.Rule {
	return &flHOA{rules.NewBase("FL_HOA", "Florida HOA Disclosure", "Checks for HOA/condo association disclosure when involved.", domain.CategoryStateSpecific, domain.SeverityMedium)}
}

func (r *flHOA) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if !utils.ContainsAny(ctx.Text, "hoa", "condo association", "homeowners association") {
		return r.Pass("no HOA/condo association involvement detected")
	}
	if matchesDisclosure(ctx, "hoa", "condo association", "association disclosure") {
		return r.Pass("HOA/condo association disclosure present")
	}
	return r.Fail("HOA/condo association involvement without disclosure",
		r.Flag("MISSING", "HOA/condo association involvement detected but no disclosure was provided", r.GetSeverity(ctx.State)))
}

type flRadon struct{ rules.Base }

// NewFLRadon checks for the Florida radon gas disclosure statement.
func NewFLRadon() domain.Rule {
	return &flRadon{rules.NewBase("FL_RADON", "Florida Radon Disclosure", "Checks for the radon gas disclosure statement.", domain.CategoryStateSpecific, domain.SeverityMedium)}
}

func (r *flRadon) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if utils.ContainsKeyword(ctx.Text, "radon") {
		return r.Pass("radon disclosure present")
	}
	return r.Fail("radon disclosure not found",
		r.Flag("MISSING", "Florida radon gas disclosure statement was not found", r.GetSeverity(ctx.State)))
}

type flEnergy struct{ rules.Base }

// NewFLEnergy checks for an energy-efficiency information brochure acknowledgment.
func NewFLEnergy() domain.Rule {
	return &flEnergy{rules.NewBase("FL_ENERGY", "Florida Energy Disclosure", "Checks for energy-efficiency information brochure acknowledgment.", domain.CategoryStateSpecific, domain.SeverityLow)}
}

func (r *flEnergy) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if utils.ContainsAny(ctx.Text, "energy efficiency", "energy-efficiency brochure") {
		return r.Pass("energy disclosure present")
	}
	return r.Fail("energy disclosure not found",
		r.Flag("MISSING", "Florida energy-efficiency brochure acknowledgment was not found", r.GetSeverity(ctx.State)))
}

type flWind struct{ rules.Base }

// NewFLWind checks for windstorm/hurricane mitigation disclosure.
func NewFLWind() domain.Rule {
	return &flWind{rules.NewBase("FL_WIND", "Florida Windstorm Disclosure", "Checks for windstorm/hurricane mitigation disclosure.", domain.CategoryStateSpecific, domain.SeverityMedium)}
}

func (r *flWind) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if utils.ContainsAny(ctx.Text, "windstorm", "hurricane mitigation", "wind mitigation") {
		return r.Pass("windstorm/hurricane mitigation disclosure present")
	}
	return r.Fail("windstorm/hurricane mitigation disclosure not found",
		r.Flag("MISSING", "Florida windstorm/hurricane mitigation disclosure was not found", r.GetSeverity(ctx.State)))
}

// Florida returns the Florida-specific rule set: Seller Disclosure,
// Flood Zone, HOA, Radon, Energy, Wind.
func Florida(cfg *domain.RuleConfig) []domain.Rule {
	return configureAll(cfg, NewFLSellerDisclosure(), NewFLFloodZone(), NewFLHOA(), NewFLRadon(), NewFLEnergy(), NewFLWind())
}
