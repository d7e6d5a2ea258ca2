package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabhnoor12/cleardeal-ai/internal/database"
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

func seedContractForHistory(t *testing.T, id string) *database.DB {
	t.Helper()
	db := newTestDB(t)
	_, err := NewContractRepo(db.Conn()).Create(context.Background(), domain.Contract{ID: id, Title: "x", Status: domain.ContractStatusDraft})
	require.NoError(t, err)
	return db
}

func TestRiskHistoryRepo_CreateAppendsEntries(t *testing.T) {
	db := seedContractForHistory(t, "c1")
	repo := NewRiskHistoryRepo(db.Conn())
	ctx := context.Background()

	_, err := repo.Create(ctx, "c1", domain.RiskHistoryEntry{AnalyzedAt: time.Now(), Score: 70})
	require.NoError(t, err)
	h, err := repo.Create(ctx, "c1", domain.RiskHistoryEntry{AnalyzedAt: time.Now().Add(time.Minute), Score: 80})
	require.NoError(t, err)

	assert.Len(t, h.Entries, 2)
	assert.Equal(t, 80, h.Entries[len(h.Entries)-1].Score)
}

func TestRiskHistoryRepo_FindByContractID_NotFound(t *testing.T) {
	repo := NewRiskHistoryRepo(newTestDB(t).Conn())
	_, err := repo.FindByContractID(context.Background(), "missing")
	assert.Error(t, err)
}

func TestRiskHistoryRepo_Create_TrimsBeyondMax(t *testing.T) {
	db := seedContractForHistory(t, "c1")
	repo := NewRiskHistoryRepo(db.Conn())
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < domain.MaxHistoryEntries+5; i++ {
		_, err := repo.Create(ctx, "c1", domain.RiskHistoryEntry{AnalyzedAt: base.Add(time.Duration(i) * time.Minute), Score: i})
		require.NoError(t, err)
	}

	h, err := repo.FindByContractID(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, h.Entries, domain.MaxHistoryEntries)
}

func TestRiskHistoryRepo_Update_ReplacesEntrySet(t *testing.T) {
	db := seedContractForHistory(t, "c1")
	repo := NewRiskHistoryRepo(db.Conn())
	ctx := context.Background()

	_, err := repo.Create(ctx, "c1", domain.RiskHistoryEntry{AnalyzedAt: time.Now(), Score: 70})
	require.NoError(t, err)

	replacement := domain.RiskHistory{ContractID: "c1", Entries: []domain.RiskHistoryEntry{
		{AnalyzedAt: time.Now().Add(time.Hour), Score: 99},
	}}
	updated, err := repo.Update(ctx, replacement)
	require.NoError(t, err)
	assert.Len(t, updated.Entries, 1)

	found, err := repo.FindByContractID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 99, found.Entries[0].Score)
}

func TestRiskHistoryRepo_DeleteByContractID(t *testing.T) {
	db := seedContractForHistory(t, "c1")
	repo := NewRiskHistoryRepo(db.Conn())
	ctx := context.Background()

	_, err := repo.Create(ctx, "c1", domain.RiskHistoryEntry{AnalyzedAt: time.Now(), Score: 70})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByContractID(ctx, "c1"))
	_, err = repo.FindByContractID(ctx, "c1")
	assert.Error(t, err)
}
