package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

func TestUnusualPhrases_FlagsKnownPhrases(t *testing.T) {
	ctx := domain.RuleContext{Text: "buyer agrees to hold harmless the seller and waive jury trial rights"}
	result := NewUnusualPhrases().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Len(t, result.Flags, 2)
}

func TestUnusualPhrases_PassesOnPlainLanguage(t *testing.T) {
	ctx := domain.RuleContext{Text: "standard residential purchase agreement"}
	result := NewUnusualPhrases().Evaluate(ctx)
	assert.True(t, result.Passed)
}

func TestUnusualTransaction_FlagsLeaseback(t *testing.T) {
	ctx := domain.RuleContext{Text: "seller shall retain a leaseback for 30 days after closing"}
	result := NewUnusualTransaction().Evaluate(ctx)
	assert.False(t, result.Passed)
}

func TestUnbalancedTerms_FlagsAsymmetricCancellation(t *testing.T) {
	ctx := domain.RuleContext{Text: "buyer may cancel this agreement at any time for any reason"}
	result := NewUnbalancedTerms().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "UNBALANCED_TERMS_ASYMMETRIC_CANCEL", result.Flags[0].Code)
}

func TestUnbalancedTerms_PassesWhenBalanced(t *testing.T) {
	ctx := domain.RuleContext{Text: "either buyer or seller may cancel this agreement on default"}
	result := NewUnbalancedTerms().Evaluate(ctx)
	assert.True(t, result.Passed)
}

func TestUnusualAddenda_FlagsManyAddenda(t *testing.T) {
	ctx := domain.RuleContext{Contract: domain.Contract{Addenda: []domain.Addendum{
		{Name: "Addendum 1", Included: true},
		{Name: "Addendum 2", Included: true},
		{Name: "Addendum 3", Included: true},
		{Name: "Addendum 4", Included: true},
		{Name: "Addendum 5", Included: true},
		{Name: "Addendum 6", Included: true},
	}}}
	result := NewUnusualAddenda().Evaluate(ctx)
	assert.False(t, result.Passed)
	codes := make(map[string]bool)
	for _, f := range result.Flags {
		codes[f.Code] = true
	}
	assert.True(t, codes["UNUSUAL_ADDENDA_MANY_ADDENDA"])
}

func TestUnusualClosing_FlagsEarlyPossession(t *testing.T) {
	ctx := domain.RuleContext{Text: "buyer is granted early possession prior to closing"}
	result := NewUnusualClosing().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "UNUSUAL_CLOSING_EARLY_POSSESSION", result.Flags[0].Code)
}

func TestUnusualClosing_PassesOnStandardClosing(t *testing.T) {
	ctx := domain.RuleContext{Text: "closing shall occur within 30 days of acceptance"}
	result := NewUnusualClosing().Evaluate(ctx)
	assert.True(t, result.Passed)
}
