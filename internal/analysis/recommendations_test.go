package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

func TestRecommend_SortsByPriorityPreservingInsertionOrder(t *testing.T) {
	a := domain.RiskAnalysis{
		Score: domain.RiskScore{
			Score: 75,
			Flags: []domain.RiskFlag{
				{Code: "X", Severity: domain.SeverityLow, Description: "low thing"},
				{Code: "Y", Severity: domain.SeverityCritical, Description: "critical thing"},
				{Code: "Z", Severity: domain.SeverityMedium, Description: "medium thing"},
			},
		},
	}

	recs := Recommend(a)

	require := assert.New(t)
	require.Len(recs, 3)
	require.Equal(domain.PriorityImmediate, recs[0].Priority)
	require.Equal("Y", recs[0].RelatedFlagCode)
	require.Equal(domain.PrioritySoon, recs[1].Priority)
	require.Equal(domain.PriorityOptional, recs[2].Priority)
}

func TestRecommend_AddsScoreBandRecommendation(t *testing.T) {
	low := Recommend(domain.RiskAnalysis{Score: domain.RiskScore{Score: 20}})
	assert.Len(t, low, 1)
	assert.Equal(t, domain.PriorityImmediate, low[0].Priority)

	mid := Recommend(domain.RiskAnalysis{Score: domain.RiskScore{Score: 50}})
	assert.Len(t, mid, 1)
	assert.Equal(t, domain.PrioritySoon, mid[0].Priority)

	high := Recommend(domain.RiskAnalysis{Score: domain.RiskScore{Score: 90}})
	assert.Empty(t, high)
}

func TestRecommend_FallsBackToGenericActionForUnknownCode(t *testing.T) {
	a := domain.RiskAnalysis{
		Score: domain.RiskScore{
			Score: 90,
			Flags: []domain.RiskFlag{{Code: "SOME_UNKNOWN_CODE", Severity: domain.SeverityLow, Description: "odd clause"}},
		},
	}
	recs := Recommend(a)
	assert.Len(t, recs, 1)
	assert.Contains(t, recs[0].Action, "odd clause")
}
