package rules

import (
	"fmt"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/utils"
)

type phraseSeverity struct {
	phrase   string
	code     string
	severity domain.Severity
}

var unusualPhraseTable = []phraseSeverity{
	{"waive all rights", "WAIVE_ALL_RIGHTS", domain.SeverityCritical},
	{"hold harmless", "HOLD_HARMLESS", domain.SeverityHigh},
	{"indemnify seller", "INDEMNIFY_SELLER", domain.SeverityHigh},
	{"no recourse", "NO_RECOURSE", domain.SeverityCritical},
	{"binding arbitration", "BINDING_ARBITRATION", domain.SeverityMedium},
	{"waive jury trial", "WAIVE_JURY_TRIAL", domain.SeverityHigh},
	{"automatic renewal", "AUTOMATIC_RENEWAL", domain.SeverityMedium},
	{"penalty clause", "PENALTY_CLAUSE", domain.SeverityHigh},
	{"sole discretion", "SOLE_DISCRETION", domain.SeverityMedium},
	{"time is of the essence", "TIME_IS_OF_THE_ESSENCE", domain.SeverityLow},
	{"as-is where-is", "AS_IS_WHERE_IS", domain.SeverityHigh},
	{"sight unseen", "SIGHT_UNSEEN", domain.SeverityCritical},
}

// UnusualPhrases flags each occurrence of a closed set of concerning phrases.
type UnusualPhrases struct{ Base }

func NewUnusualPhrases() *UnusualPhrases {
	return &UnusualPhrases{NewBase("UNUSUAL_PHRASE", "Unusual Phrases",
		"Flags contract language drawn from a closed set of concerning phrases.",
		domain.CategoryUnusualClause, domain.SeverityMedium)}
}

func (r *UnusualPhrases) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	var flags []domain.RiskFlag
	for _, p := range unusualPhraseTable {
		if utils.ContainsKeyword(ctx.Text, p.phrase) {
			flags = append(flags, r.Flag(p.code, fmt.Sprintf("Contract contains the phrase %q", p.phrase), p.severity))
		}
	}
	if len(flags) == 0 {
		return r.Pass("no unusual phrases detected")
	}
	return r.Fail("unusual phrases detected", flags...)
}

var unusualTransactionPhrases = []string{"leaseback", "seller financing", "land contract", "subject to existing", "wraparound", "assignment of contract"}

// UnusualTransaction flags non-standard transaction structures.
type UnusualTransaction struct{ Base }

func NewUnusualTransaction() *UnusualTransaction {
	return &UnusualTransaction{NewBase("UNUSUAL_TRANSACTION", "Unusual Transaction",
		"Flags non-standard transaction structures.",
		domain.CategoryUnusualClause, domain.SeverityMedium)}
}

func (r *UnusualTransaction) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	var flags []domain.RiskFlag
	for _, phrase := range unusualTransactionPhrases {
		if utils.ContainsKeyword(ctx.Text, phrase) {
			flags = append(flags, r.Flag("DETECTED", fmt.Sprintf("Contract describes a %q transaction structure", phrase), r.GetSeverity(ctx.State)))
		}
	}
	if len(flags) == 0 {
		return r.Pass("standard transaction structure")
	}
	return r.Fail("unusual transaction structure detected", flags...)
}

// UnbalancedTerms flags asymmetric rights that favor one party.
type UnbalancedTerms struct{ Base }

func NewUnbalancedTerms() *UnbalancedTerms {
	return &UnbalancedTerms{NewBase("UNBALANCED_TERMS", "Unbalanced Terms",
		"Flags contract terms that asymmetrically favor one party.",
		domain.CategoryUnusualClause, domain.SeverityHigh)}
}

func (r *UnbalancedTerms) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	var flags []domain.RiskFlag
	if utils.ContainsKeyword(ctx.Text, "buyer may cancel") && !utils.ContainsKeyword(ctx.Text, "seller may cancel") {
		flags = append(flags, r.Flag("ASYMMETRIC_CANCEL", "Only the buyer is granted a cancellation right", domain.SeverityHigh))
	}
	if utils.ContainsKeyword(ctx.Text, "buyer default") && !utils.ContainsKeyword(ctx.Text, "seller default") {
		flags = append(flags, r.Flag("ASYMMETRIC_DEFAULT", "Default consequences are specified only for the buyer", domain.SeverityHigh))
	}
	if utils.ContainsKeyword(ctx.Text, "unlimited liability") {
		flags = append(flags, r.Flag("UNLIMITED_LIABILITY", "Contract imposes unlimited liability on a party", domain.SeverityCritical))
	}
	if utils.ContainsKeyword(ctx.Text, "unilateral extension") || utils.ContainsKeyword(ctx.Text, "sole option to extend") {
		flags = append(flags, r.Flag("UNILATERAL_EXTENSION", "One party may unilaterally extend the contract", domain.SeverityHigh))
	}
	if len(flags) == 0 {
		return r.Pass("no unbalanced terms detected")
	}
	return r.Fail("unbalanced terms detected", flags...)
}

var unusualAddendaPhrases = []string{"kick-out", "right of first refusal", "rent-back", "personal property", "contingent sale", "short sale", "reo", "foreclosure"}

// UnusualAddenda flags addenda from a watch-list and a count-based MANY_ADDENDA flag.
type UnusualAddenda struct{ Base }

func NewUnusualAddenda() *UnusualAddenda {
	return &UnusualAddenda{NewBase("UNUSUAL_ADDENDA", "Unusual Addenda",
		"Flags addenda from a watch-list and an unusually high addenda count.",
		domain.CategoryUnusualClause, domain.SeverityMedium)}
}

func (r *UnusualAddenda) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	var flags []domain.RiskFlag
	included := ctx.Contract.IncludedAddendumNames()
	for _, phrase := range unusualAddendaPhrases {
		if utils.ContainsKeyword(ctx.Text, phrase) || matchesAny(phrase, included) {
			flags = append(flags, r.Flag("DETECTED", fmt.Sprintf("Contract includes a %q addendum", phrase), r.GetSeverity(ctx.State)))
		}
	}
	if len(included) > 5 {
		flags = append(flags, r.Flag("MANY_ADDENDA", fmt.Sprintf("Contract includes %d addenda, more than typical", len(included)), domain.SeverityLow))
	}
	if len(flags) == 0 {
		return r.Pass("no unusual addenda detected")
	}
	return r.Fail("unusual addenda detected", flags...)
}

// UnusualClosing flags early possession, delayed possession, long closing,
// and simultaneous close arrangements.
type UnusualClosing struct{ Base }

func NewUnusualClosing() *UnusualClosing {
	return &UnusualClosing{NewBase("UNUSUAL_CLOSING", "Unusual Closing",
		"Flags non-standard closing or possession arrangements.",
		domain.CategoryTimeline, domain.SeverityMedium)}
}

func (r *UnusualClosing) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	var flags []domain.RiskFlag
	if utils.ContainsKeyword(ctx.Text, "early possession") {
		flags = append(flags, r.Flag("EARLY_POSSESSION", "Buyer is granted early possession before closing", domain.SeverityHigh))
	}
	if utils.ContainsKeyword(ctx.Text, "delayed possession") || utils.ContainsKeyword(ctx.Text, "rent back") {
		flags = append(flags, r.Flag("DELAYED_POSSESSION", "Seller retains possession after closing", r.GetSeverity(ctx.State)))
	}
	if days, found := utils.ExtractDaysNear(ctx.Text, "closing", 60); found && days > 60 {
		flags = append(flags, r.Flag("LONG_CLOSING", fmt.Sprintf("Closing period of %d days is longer than typical", days), r.GetSeverity(ctx.State)))
	}
	if utils.ContainsKeyword(ctx.Text, "simultaneous close") || utils.ContainsKeyword(ctx.Text, "simultaneous closing") {
		flags = append(flags, r.Flag("SIMULTANEOUS_CLOSE", "Closing is contingent on a simultaneous transaction", r.GetSeverity(ctx.State)))
	}
	if len(flags) == 0 {
		return r.Pass("no unusual closing arrangements detected")
	}
	return r.Fail("unusual closing arrangements detected", flags...)
}
