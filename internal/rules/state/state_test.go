package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

func disclosed(name string) domain.Disclosure {
	return domain.Disclosure{Name: name, Required: true, Provided: true}
}

func TestCalifornia_RuleSetOrderAndCount(t *testing.T) {
	rules := California(nil)
	assert.Len(t, rules, 5)
	assert.Equal(t, "CA_TDS", rules[0].ID())
	assert.Equal(t, "CA_DETECTORS", rules[len(rules)-1].ID())
}

func TestCalifornia_TDS_PassesWhenDisclosureProvided(t *testing.T) {
	ctx := domain.RuleContext{
		State: "CA",
		Text:  "Buyer acknowledges the attached documents.",
		Contract: domain.Contract{
			Disclosures: []domain.Disclosure{disclosed("Transfer Disclosure Statement")},
		},
	}
	result := NewCATDS().Evaluate(ctx)
	assert.True(t, result.Passed)
}

func TestCalifornia_TDS_FailsWhenMissing(t *testing.T) {
	ctx := domain.RuleContext{State: "CA", Text: "no relevant disclosures here"}
	result := NewCATDS().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "CA_TDS_MISSING", result.Flags[0].Code)
}

func TestCalifornia_MelloRoos_PassesWhenNotApplicable(t *testing.T) {
	ctx := domain.RuleContext{State: "CA", Text: "ordinary single-family residence"}
	result := NewCAMelloRoos().Evaluate(ctx)
	assert.True(t, result.Passed)
}

func TestCalifornia_MelloRoos_FailsWhenDistrictMentionedButUndisclosed(t *testing.T) {
	ctx := domain.RuleContext{State: "CA", Text: "property is within a Mello-Roos community facilities district"}
	result := NewCAMelloRoos().Evaluate(ctx)
	assert.False(t, result.Passed)
}

func TestTexas_RuleSetOrderAndCount(t *testing.T) {
	rules := Texas(nil)
	assert.Len(t, rules, 6)
	assert.Equal(t, "TX_SELLER_DISCLOSURE", rules[0].ID())
	assert.Equal(t, "TX_TITLE", rules[len(rules)-1].ID())
}

func TestTexas_OptionPeriod_PassesOnKeyword(t *testing.T) {
	ctx := domain.RuleContext{State: "TX", Text: "Buyer shall have an option period of 10 days upon payment of the option fee."}
	result := NewTXOptionPeriod().Evaluate(ctx)
	assert.True(t, result.Passed)
}

func TestTexas_MudPid_PassesWhenNoDistrictIndicated(t *testing.T) {
	ctx := domain.RuleContext{State: "TX", Text: "standard single family home, no special districts"}
	result := NewTXMudPid().Evaluate(ctx)
	assert.True(t, result.Passed)
}

func TestTexas_MudPid_FailsWhenDistrictMentionedButUndisclosed(t *testing.T) {
	ctx := domain.RuleContext{State: "TX", Text: "property lies within a Municipal Utility District"}
	result := NewTXMudPid().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "TX_MUD_PID_NO_DISCLOSURE", result.Flags[0].Code)
}

func TestFlorida_RuleSetOrderAndCount(t *testing.T) {
	rules := Florida(nil)
	assert.Len(t, rules, 6)
	assert.Equal(t, "FL_SELLER_DISCLOSURE", rules[0].ID())
	assert.Equal(t, "FL_WIND", rules[len(rules)-1].ID())
}

func TestFlorida_HOA_PassesWhenNoAssociationDetected(t *testing.T) {
	ctx := domain.RuleContext{State: "FL", Text: "single family home, no association"}
	result := NewFLHOA().Evaluate(ctx)
	assert.True(t, result.Passed)
}

func TestFlorida_Radon_FailsWhenAbsent(t *testing.T) {
	ctx := domain.RuleContext{State: "FL", Text: "no mention of gas disclosures"}
	result := NewFLRadon().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "FL_RADON_MISSING", result.Flags[0].Code)
}

func TestNewYork_RuleSetOrderAndCount(t *testing.T) {
	rules := NewYork(nil)
	assert.Len(t, rules, 6)
	assert.Equal(t, "NY_PCDS", rules[0].ID())
	assert.Equal(t, "NY_DETECTORS", rules[len(rules)-1].ID())
}

func TestNewYork_BoardApproval_PassesWhenNotCoOp(t *testing.T) {
	ctx := domain.RuleContext{State: "NY", Text: "purchase of a single-family home"}
	result := NewNYBoardApproval().Evaluate(ctx)
	assert.True(t, result.Passed)
}

func TestNewYork_BoardApproval_FailsWhenCoOpWithoutContingency(t *testing.T) {
	ctx := domain.RuleContext{State: "NY", Text: "purchase of shares in a co-op apartment"}
	result := NewNYBoardApproval().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "NY_BOARD_APPROVAL_NO_BOARD_CONTINGENCY", result.Flags[0].Code)
}

func TestNewYork_MansionTax_PassesBelowThreshold(t *testing.T) {
	ctx := domain.RuleContext{State: "NY", Text: "purchase price of $500,000"}
	result := NewNYMansionTax().Evaluate(ctx)
	assert.True(t, result.Passed)
}

func TestNewYork_MansionTax_FailsAboveThresholdWithoutAcknowledgment(t *testing.T) {
	ctx := domain.RuleContext{State: "NY", Text: "purchase price of $1,500,000 due at closing"}
	result := NewNYMansionTax().Evaluate(ctx)
	assert.False(t, result.Passed)
	assert.Equal(t, "NY_MANSION_TAX_NOT_ACKNOWLEDGED", result.Flags[0].Code)
}

func TestNewYork_MansionTax_PassesAboveThresholdWhenAcknowledged(t *testing.T) {
	ctx := domain.RuleContext{State: "NY", Text: "purchase price of $1,500,000; buyer acknowledges the mansion tax applies"}
	result := NewNYMansionTax().Evaluate(ctx)
	assert.True(t, result.Passed)
}

func TestConfigureAll_AppliesConfigToEveryRule(t *testing.T) {
	disabled := false
	cfg := &domain.RuleConfig{
		Enabled:         true,
		DefaultSeverity: domain.SeverityLow,
		StateOverrides: map[string]domain.StateOverride{
			"CA": {Enabled: &disabled},
		},
	}
	rules := California(cfg)
	for _, r := range rules {
		assert.False(t, r.IsEnabled("CA"))
	}
}
