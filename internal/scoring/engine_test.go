package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name      string
		in        domain.ScoreEngineInput
		wantScore int
		flagged   bool
	}{
		{
			name:      "clean contract scores at the ceiling",
			in:        domain.ScoreEngineInput{ContractID: "c1"},
			wantScore: 100,
			flagged:   false,
		},
		{
			name: "250 unusual clauses push the score to the flagged threshold",
			in: domain.ScoreEngineInput{
				ContractID:     "c2",
				UnusualClauses: make([]string, 250),
			},
			wantScore: 50,
			flagged:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Calculate(tt.in)
			assert.Equal(t, tt.in.ContractID, out.ContractID)
			assert.Equal(t, tt.wantScore, out.TotalScore)
			assert.Equal(t, tt.flagged, out.Flagged)
		})
	}
}

func TestCalculate_DefaultsWeightsWhenZeroValue(t *testing.T) {
	out := Calculate(domain.ScoreEngineInput{ContractID: "c1"})
	assert.Equal(t, domain.DefaultScoreWeights(), out.Weights)
}

func TestLabelAndLevel(t *testing.T) {
	tests := []struct {
		score     int
		wantLabel string
		wantLevel RiskLevel
	}{
		{90, "Low", RiskLevelLow},
		{70, "Moderate", RiskLevelModerate},
		{50, "Elevated", RiskLevelElevated},
		{30, "High", RiskLevelHigh},
		{10, "Critical", RiskLevelCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantLabel, Label(tt.score))
		assert.Equal(t, tt.wantLevel, Level(tt.score))
	}
}

func TestApplySeverityPenalties(t *testing.T) {
	flags := []domain.RiskFlag{
		{Severity: domain.SeverityCritical},
		{Severity: domain.SeverityLow},
	}
	assert.Equal(t, 100-15-2, ApplySeverityPenalties(100, flags))
}

func TestApplySeverityPenalties_ClampsAtZero(t *testing.T) {
	flags := []domain.RiskFlag{
		{Severity: domain.SeverityCritical},
		{Severity: domain.SeverityCritical},
	}
	assert.Equal(t, 0, ApplySeverityPenalties(10, flags))
}
