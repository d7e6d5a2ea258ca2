// Package state implements the per-state rule factories of the state
// registry: California, Texas, Florida, and New York, per the canonical
// rule codes named in the specification's state table.
package state

import (
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/rules"
	"github.com/prabhnoor12/cleardeal-ai/internal/utils"
)

type caTDS struct{ rules.Base }

// NewCATDS checks for California's Transfer Disclosure Statement.
func NewCATDS() domain.Rule {
	return &caTDS{rules.NewBase("CA_TDS", "California TDS", "Checks for the Transfer Disclosure Statement required in California.", domain.CategoryStateSpecific, domain.SeverityHigh)}
}

func (r *caTDS) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if matchesDisclosure(ctx, "transfer disclosure statement", "tds") || utils.ContainsKeyword(ctx.Text, "transfer disclosure statement") {
		return r.Pass("Transfer Disclosure Statement present")
	}
	return r.Fail("Transfer Disclosure Statement not found",
		r.Flag("MISSING", "California Transfer Disclosure Statement (TDS) was not found", r.GetSeverity(ctx.State)))
}

type caNHD struct{ rules.Base }

// NewCANHD checks for California's Natural Hazard Disclosure.
func NewCANHD() domain.Rule {
	return &caNHD{rules.NewBase("CA_NHD", "California NHD", "Checks for the Natural Hazard Disclosure required in California.", domain.CategoryStateSpecific, domain.SeverityHigh)}
}

func (r *caNHD) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if matchesDisclosure(ctx, "natural hazard disclosure", "nhd") || utils.ContainsKeyword(ctx.Text, "natural hazard disclosure") {
		return r.Pass("Natural Hazard Disclosure present")
	}
	return r.Fail("Natural Hazard Disclosure not found",
		r.Flag("MISSING", "California Natural Hazard Disclosure (NHD) was not found", r.GetSeverity(ctx.State)))
}

type caMelloRoos struct{ rules.Base }

// NewCAMelloRoos checks for Mello-Roos special-tax disclosure.
func NewCAMelloRoos() domain.Rule {
	return &caMelloRoos{rules.NewBase("CA_MELLO_ROOS", "California Mello-Roos", "Checks for Mello-Roos special tax district disclosure.", domain.CategoryStateSpecific, domain.SeverityMedium)}
}

func (r *caMelloRoos) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if !utils.ContainsKeyword(ctx.Text, "mello-roos") && !utils.ContainsKeyword(ctx.Text, "mello roos") {
		return r.Pass("no Mello-Roos district indicated")
	}
	if matchesDisclosure(ctx, "mello-roos", "mello roos") {
		return r.Pass("Mello-Roos disclosure present")
	}
	return r.Fail("property is in a Mello-Roos district without disclosure",
		r.Flag("NO_DISCLOSURE", "Property appears to be in a Mello-Roos district but no disclosure was provided", r.GetSeverity(ctx.State)))
}

type caEarthquake struct{ rules.Base }

// NewCAEarthquake checks for the earthquake/seismic hazards disclosure.
func NewCAEarthquake() domain.Rule {
	return &caEarthquake{rules.NewBase("CA_EARTHQUAKE", "California Earthquake Disclosure", "Checks for the earthquake/seismic hazards disclosure.", domain.CategoryStateSpecific, domain.SeverityMedium)}
}

func (r *caEarthquake) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if matchesDisclosure(ctx, "earthquake", "seismic") {
		return r.Pass("earthquake/seismic hazards disclosure present")
	}
	return r.Fail("earthquake/seismic hazards disclosure not found",
		r.Flag("MISSING", "Earthquake/seismic hazards disclosure was not found", r.GetSeverity(ctx.State)))
}

type caDetectors struct{ rules.Base }

// NewCADetectors checks for the smoke/carbon-monoxide detector compliance statement.
func NewCADetectors() domain.Rule {
	return &caDetectors{rules.NewBase("CA_DETECTORS", "California Detector Compliance", "Checks for smoke/carbon monoxide detector compliance statement.", domain.CategoryStateSpecific, domain.SeverityMedium)}
}

func (r *caDetectors) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if utils.ContainsAny(ctx.Text, "smoke detector", "carbon monoxide detector") {
		return r.Pass("detector compliance statement present")
	}
	return r.Fail("detector compliance statement not found",
		r.Flag("MISSING", "Smoke/carbon monoxide detector compliance statement was not found", r.GetSeverity(ctx.State)))
}

// California returns the California-specific rule set: TDS, NHD,
// Mello-Roos, Earthquake, Detectors.
func California(cfg *domain.RuleConfig) []domain.Rule {
	return configureAll(cfg, NewCATDS(), NewCANHD(), NewCAMelloRoos(), NewCAEarthquake(), NewCADetectors())
}
