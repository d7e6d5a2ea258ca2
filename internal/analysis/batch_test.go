package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	internaltesting "github.com/prabhnoor12/cleardeal-ai/internal/testing"
)

func TestAnalyzeBatch_RecordsPerItemSuccessAndFailure(t *testing.T) {
	o, contracts, _ := newTestOrchestrator(t)
	good := internaltesting.NewContractFixture()
	contracts.Seed(good)

	result := o.AnalyzeBatch(context.Background(), []string{good.ID, "missing"}, AnalysisOptions{SkipAI: true})

	assert.Len(t, result.Completed, 1)
	assert.Len(t, result.Failed, 1)
	assert.Equal(t, good.ID, result.Completed[0].ContractID)
	assert.Equal(t, "missing", result.Failed[0].ContractID)
	assert.Equal(t, 2, len(result.Completed)+len(result.Failed))
}

func TestAnalyzeBatch_RespectsCancellation(t *testing.T) {
	o, contracts, _ := newTestOrchestrator(t)
	c := internaltesting.NewContractFixture()
	contracts.Seed(c)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := o.AnalyzeBatch(ctx, []string{c.ID}, AnalysisOptions{SkipAI: true})
	assert.Empty(t, result.Completed)
	assert.Len(t, result.Failed, 1)
}
