package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

func TestInspectionContingency_PassesOnCash(t *testing.T) {
	ctx := domain.RuleContext{Text: "all cash purchase, no financing"}
	result := NewInspectionContingency().Evaluate(ctx)
	assert.True(t, result.Passed)
}

func TestInspectionContingency_FailsAsIs(t *testing.T) {
	ctx := domain.RuleContext{Text: "buyer shall have the right to an inspection; property is sold as-is"}
	result := NewInspectionContingency().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "INSPECTION_CONTINGENCY_AS_IS", result.Flags[0].Code)
}

func TestInspectionContingency_FailsMissing(t *testing.T) {
	ctx := domain.RuleContext{Text: "buyer will purchase the property with financing"}
	result := NewInspectionContingency().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "INSPECTION_CONTINGENCY_MISSING", result.Flags[0].Code)
}

func TestInspectionTimeline_FailsWhenMissing(t *testing.T) {
	ctx := domain.RuleContext{Text: "no timeline specified anywhere"}
	result := NewInspectionTimeline().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "INSPECTION_TIMELINE_NO_TIMELINE", result.Flags[0].Code)
}

func TestInspectionTimeline_FlagsTooLong(t *testing.T) {
	ctx := domain.RuleContext{Text: "buyer shall complete the inspection within 30 days of acceptance"}
	result := NewInspectionTimeline().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "INSPECTION_TIMELINE_TOO_LONG", result.Flags[0].Code)
}

func TestRequiredInspections_FlagsMissingBoth(t *testing.T) {
	ctx := domain.RuleContext{Text: "buyer waives all contingencies"}
	result := NewRequiredInspections().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Len(t, result.Flags, 2)
}

func TestRequiredInspections_PassesWhenBothMentioned(t *testing.T) {
	ctx := domain.RuleContext{Text: "buyer shall obtain a home inspection and a pest inspection"}
	result := NewRequiredInspections().Evaluate(ctx)
	assert.True(t, result.Passed)
}

func TestInspectionRepairTerms_FlagsSellerDisclaimer(t *testing.T) {
	ctx := domain.RuleContext{Text: "repair cap of $2,000; seller not responsible for any further repairs; no credit in lieu offered"}
	result := NewInspectionRepairTerms().Evaluate(ctx)
	assert.False(t, result.Passed)
	codes := make(map[string]bool)
	for _, f := range result.Flags {
		codes[f.Code] = true
	}
	assert.True(t, codes["INSPECTION_REPAIR_TERMS_SELLER_NOT_RESPONSIBLE"])
}
