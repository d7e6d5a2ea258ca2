package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/utils"
)

// disclosureSeverity derives a flag severity from a disclosure's name:
// standard disclosures are critical, property-condition disclosures are
// high, everything else is medium.
func disclosureSeverity(name string) domain.Severity {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "standard"):
		return domain.SeverityCritical
	case strings.Contains(lower, "property condition") || strings.Contains(lower, "property-condition"):
		return domain.SeverityHigh
	default:
		return domain.SeverityMedium
	}
}

// DisclosureMissing emits one MISSING flag per required-but-not-provided Disclosure.
type DisclosureMissing struct{ Base }

func NewDisclosureMissing() *DisclosureMissing {
	return &DisclosureMissing{NewBase("MISSING_DISCLOSURE", "Disclosure Missing",
		"Flags every required disclosure that was not provided.",
		domain.CategoryDisclosure, domain.SeverityMedium)}
}

func (r *DisclosureMissing) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	var flags []domain.RiskFlag
	for _, d := range ctx.Contract.Disclosures {
		if d.Required && !d.Provided {
			flags = append(flags, r.Flag("MISSING", fmt.Sprintf("Required disclosure %q was not provided", d.Name), disclosureSeverity(d.Name)))
		}
	}
	if len(flags) == 0 {
		return r.Pass("all required disclosures provided")
	}
	return r.Fail("one or more required disclosures are missing", flags...)
}

// DisclosureCompleteness matches a configurable required-set against
// provided disclosure names, case-insensitive substring match both ways.
type DisclosureCompleteness struct {
	Base
	requiredSet []string
}

func NewDisclosureCompleteness(requiredSet []string) *DisclosureCompleteness {
	return &DisclosureCompleteness{
		Base:        NewBase("DISCLOSURE_COMPLETENESS", "Disclosure Completeness", "Checks that a configured set of disclosures is present.", domain.CategoryDisclosure, domain.SeverityHigh),
		requiredSet: requiredSet,
	}
}

func (r *DisclosureCompleteness) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	provided := ctx.Contract.ProvidedDisclosureNames()
	var flags []domain.RiskFlag
	for _, required := range r.requiredSet {
		if !matchesAny(required, provided) {
			flags = append(flags, r.Flag("INCOMPLETE", fmt.Sprintf("Required disclosure %q not found among provided disclosures", required), r.GetSeverity(ctx.State)))
		}
	}
	if len(flags) == 0 {
		return r.Pass("configured disclosure set is complete")
	}
	return r.Fail("configured disclosure set is incomplete", flags...)
}

func matchesAny(needle string, haystack []string) bool {
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), strings.ToLower(needle)) || strings.Contains(strings.ToLower(needle), strings.ToLower(h)) {
			return true
		}
	}
	return false
}

var hoaRequiredDocs = []string{"hoa documents", "cc&rs", "hoa financial statements", "special assessments"}

// HOADisclosure flags missing HOA-related documents once HOA involvement is detected.
type HOADisclosure struct{ Base }

func NewHOADisclosure() *HOADisclosure {
	return &HOADisclosure{NewBase("HOA_DISCLOSURE", "HOA Disclosure",
		"When a homeowners association is involved, checks for its required documents.",
		domain.CategoryDisclosure, domain.SeverityHigh)}
}

func (r *HOADisclosure) hasHOA(ctx domain.RuleContext) bool {
	if utils.ContainsAny(ctx.Text, "hoa", "homeowners association", "homeowner's association") {
		return true
	}
	for _, d := range ctx.Contract.Disclosures {
		lower := strings.ToLower(d.Name)
		if strings.Contains(lower, "hoa") || strings.Contains(lower, "association") {
			return true
		}
	}
	return false
}

func (r *HOADisclosure) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if !r.hasHOA(ctx) {
		return r.Pass("no HOA involvement detected")
	}
	provided := ctx.Contract.ProvidedDisclosureNames()
	var flags []domain.RiskFlag
	for _, doc := range hoaRequiredDocs {
		if !matchesAny(doc, provided) {
			flags = append(flags, r.Flag("HOA_MISSING", fmt.Sprintf("HOA document %q not found among provided disclosures", doc), r.GetSeverity(ctx.State)))
		}
	}
	if len(flags) == 0 {
		return r.Pass("all HOA disclosure documents present")
	}
	return r.Fail("HOA involvement detected with missing documents", flags...)
}

// DisclosureAge parses "dated"/"as of" dates and flags disclosures older than max_age_days.
type DisclosureAge struct{ Base }

func NewDisclosureAge() *DisclosureAge {
	return &DisclosureAge{NewBase("DISCLOSURE_AGE", "Disclosure Age",
		"Flags disclosures whose stated date is too old.",
		domain.CategoryDisclosure, domain.SeverityMedium)}
}

func (r *DisclosureAge) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	date, found := utils.ExtractDate(ctx.Text)
	if !found {
		return r.Pass("no disclosure date found to evaluate")
	}
	ageDays := time.Since(date).Hours() / 24
	maxAge := r.Threshold("max_age_days", 180)
	if ageDays <= maxAge {
		return r.Pass(fmt.Sprintf("disclosure dated %s is current", date.Format("2006-01-02")))
	}
	severity := domain.SeverityMedium
	if ageDays > 365 {
		severity = domain.SeverityHigh
	}
	return r.Fail(fmt.Sprintf("disclosure dated %s is %d days old", date.Format("2006-01-02"), int(ageDays)),
		r.Flag("OUTDATED", fmt.Sprintf("Disclosure dated %s is %d days old", date.Format("2006-01-02"), int(ageDays)), severity))
}
