package di

import (
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/rules"
)

// defaultRequiredDisclosures mirrors the disclosures named in the scenario
// walkthroughs: Transfer Disclosure Statement, Natural Hazard Disclosure,
// and the federally required lead-based paint disclosure.
var defaultRequiredDisclosures = []string{"TDS", "NHD", "Lead-Based Paint Disclosure"}

// generalRules builds the non-state-specific rule set evaluated for every
// contract, in a fixed registration order.
func generalRules() []domain.Rule {
	return []domain.Rule{
		rules.NewFinancingContingency(),
		rules.NewFinancingTimeline(),
		rules.NewLoanTerms(),
		rules.NewPreApproval(),
		rules.NewAppraisalContingency(),

		rules.NewInspectionContingency(),
		rules.NewInspectionTimeline(),
		rules.NewRequiredInspections(),
		rules.NewInspectionRepairTerms(),

		rules.NewEarnestMoneyAmount(),
		rules.NewEarnestMoneyTimeline(),
		rules.NewEscrowHolder(),
		rules.NewEMDRefundConditions(),

		rules.NewDisclosureMissing(),
		rules.NewDisclosureCompleteness(defaultRequiredDisclosures),
		rules.NewHOADisclosure(),
		rules.NewDisclosureAge(),

		rules.NewUnusualPhrases(),
		rules.NewUnusualTransaction(),
		rules.NewUnbalancedTerms(),
		rules.NewUnusualAddenda(),
		rules.NewUnusualClosing(),
	}
}
