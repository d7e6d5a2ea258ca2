package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// fakeRule is a minimal domain.Rule for exercising the engine in isolation.
type fakeRule struct {
	Base
	result  domain.RuleResult
	panics  bool
	enabled bool
}

func newFakeRule(id string, category domain.RuleCategory, result domain.RuleResult) *fakeRule {
	return &fakeRule{Base: NewBase(id, id, id, category, domain.SeverityMedium), result: result, enabled: true}
}

func (f *fakeRule) IsEnabled(state string) bool { return f.enabled }

func (f *fakeRule) Evaluate(ctx domain.RuleContext) domain.RuleResult {
	if f.panics {
		panic("boom")
	}
	return f.result
}

func TestEngine_EvaluateRespectsRegistrationOrderAndEnabled(t *testing.T) {
	e := NewEngine()
	r1 := newFakeRule("r1", domain.CategoryFinancing, domain.RuleResult{RuleID: "r1", Passed: true})
	r2 := newFakeRule("r2", domain.CategoryInspection, domain.RuleResult{RuleID: "r2", Passed: false})
	r2.enabled = false
	r3 := newFakeRule("r3", domain.CategoryFinancing, domain.RuleResult{RuleID: "r3", Passed: false})
	e.RegisterAll([]domain.Rule{r1, r2, r3})

	results := e.Evaluate(domain.RuleContext{})

	assert.Len(t, results, 2)
	assert.Equal(t, "r1", results[0].RuleID)
	assert.Equal(t, "r3", results[1].RuleID)
}

func TestEngine_EvaluateCategoryFilters(t *testing.T) {
	e := NewEngine()
	r1 := newFakeRule("r1", domain.CategoryFinancing, domain.RuleResult{RuleID: "r1", Passed: true})
	r2 := newFakeRule("r2", domain.CategoryInspection, domain.RuleResult{RuleID: "r2", Passed: true})
	e.RegisterAll([]domain.Rule{r1, r2})

	results := e.EvaluateCategory(domain.RuleContext{}, domain.CategoryInspection)

	assert.Len(t, results, 1)
	assert.Equal(t, "r2", results[0].RuleID)
}

func TestEngine_EvaluateContainsPanickingRule(t *testing.T) {
	e := NewEngine()
	r1 := newFakeRule("r1", domain.CategoryFinancing, domain.RuleResult{})
	r1.panics = true
	e.Register(r1)

	results := e.Evaluate(domain.RuleContext{})

	assert.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "r1_ERROR", results[0].Flags[0].Code)
}

func TestAggregateFlags(t *testing.T) {
	results := []domain.RuleResult{
		{Flags: []domain.RiskFlag{{Code: "a"}, {Code: "b"}}},
		{Flags: []domain.RiskFlag{{Code: "c"}}},
	}
	flags := AggregateFlags(results)
	assert.Equal(t, []string{"a", "b", "c"}, []string{flags[0].Code, flags[1].Code, flags[2].Code})
}

func TestSummarize(t *testing.T) {
	results := []domain.RuleResult{
		{Passed: true},
		{Passed: false, Flags: []domain.RiskFlag{{Severity: domain.SeverityHigh}}},
		{Passed: false, Flags: []domain.RiskFlag{{Severity: domain.SeverityHigh}, {Severity: domain.SeverityLow}}},
	}
	s := Summarize(results)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Passed)
	assert.Equal(t, 2, s.Failed)
	assert.Equal(t, 2, s.FlagsBySeverity[domain.SeverityHigh])
	assert.Equal(t, 1, s.FlagsBySeverity[domain.SeverityLow])
}
