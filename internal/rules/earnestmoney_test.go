package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

func TestEarnestMoneyAmount_PassesWhenUndetermined(t *testing.T) {
	ctx := domain.RuleContext{Text: "no dollar amounts mentioned"}
	result := NewEarnestMoneyAmount().Evaluate(ctx)
	assert.True(t, result.Passed)
}

func TestEarnestMoneyAmount_FlagsTooLow(t *testing.T) {
	ctx := domain.RuleContext{Text: "purchase price of $500,000 with earnest money of $1,000"}
	result := NewEarnestMoneyAmount().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "EMD_AMOUNT_TOO_LOW", result.Flags[0].Code)
}

func TestEarnestMoneyAmount_FlagsTooHigh(t *testing.T) {
	ctx := domain.RuleContext{Text: "purchase price of $500,000 with earnest money of $50,000"}
	result := NewEarnestMoneyAmount().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "EMD_AMOUNT_TOO_HIGH", result.Flags[0].Code)
}

func TestEarnestMoneyTimeline_FailsWhenMissing(t *testing.T) {
	ctx := domain.RuleContext{Text: "no timeline mentioned here"}
	result := NewEarnestMoneyTimeline().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "EMD_TIMELINE_TIMELINE_MISSING", result.Flags[0].Code)
}

func TestEarnestMoneyTimeline_PassesWithinRange(t *testing.T) {
	ctx := domain.RuleContext{Text: "earnest money shall be deposited within 3 days of acceptance"}
	result := NewEarnestMoneyTimeline().Evaluate(ctx)
	assert.True(t, result.Passed)
}

func TestEscrowHolder_FailsWhenAbsent(t *testing.T) {
	ctx := domain.RuleContext{Text: "no mention of deposit holder"}
	result := NewEscrowHolder().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "ESCROW_HOLDER_NO_ESCROW_HOLDER", result.Flags[0].Code)
}

func TestEscrowHolder_FlagsRiskyHolder(t *testing.T) {
	ctx := domain.RuleContext{Text: "earnest money held in escrow; seller holds the deposit directly"}
	result := NewEscrowHolder().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, domain.SeverityCritical, result.Flags[0].Severity)
}

func TestEMDRefundConditions_FlagsNonRefundable(t *testing.T) {
	ctx := domain.RuleContext{Text: "earnest money deposit is non-refundable upon acceptance"}
	result := NewEMDRefundConditions().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "EMD_REFUND_NON_REFUNDABLE", result.Flags[0].Code)
}

func TestEMDRefundConditions_PassesWithRefundTerms(t *testing.T) {
	ctx := domain.RuleContext{Text: "earnest money will be returned to buyer if the contract is terminated"}
	result := NewEMDRefundConditions().Evaluate(ctx)
	assert.True(t, result.Passed)
}
