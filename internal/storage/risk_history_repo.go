package storage

import (
	"context"
	"database/sql"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/prabhnoor12/cleardeal-ai/internal/apperrors"
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// RiskHistoryRepo is the SQLite-backed implementation of
// domain.RiskHistoryRepo: one row per history entry, encoded with msgpack
// (smaller and faster than JSON for the append-heavy, rarely-read time
// series). It is a reference adapter for the port: di.Build does not
// construct it, and both the orchestrator and the HTTP handlers use the
// in-process internal/riskhistory.Store instead.
type RiskHistoryRepo struct {
	db *sql.DB
}

// NewRiskHistoryRepo constructs a RiskHistoryRepo over db.
func NewRiskHistoryRepo(db *sql.DB) *RiskHistoryRepo {
	return &RiskHistoryRepo{db: db}
}

func (r *RiskHistoryRepo) FindByContractID(ctx context.Context, contractID string) (*domain.RiskHistory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT payload FROM risk_history WHERE contract_id = ? ORDER BY analyzed_at`, contractID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "find risk history", err)
	}
	defer rows.Close()

	var entries []domain.RiskHistoryEntry
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, apperrors.Wrap(apperrors.KindPersistence, "scan risk history entry", err)
		}
		var e domain.RiskHistoryEntry
		if err := msgpack.Unmarshal(blob, &e); err != nil {
			return nil, apperrors.Wrap(apperrors.KindPersistence, "decode risk history entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "iterate risk history", err)
	}
	if len(entries) == 0 {
		return nil, apperrors.NotFound("risk history", contractID)
	}
	if len(entries) > domain.MaxHistoryEntries {
		entries = entries[len(entries)-domain.MaxHistoryEntries:]
	}
	return &domain.RiskHistory{ContractID: contractID, Entries: entries}, nil
}

func (r *RiskHistoryRepo) Create(ctx context.Context, contractID string, entry domain.RiskHistoryEntry) (domain.RiskHistory, error) {
	blob, err := msgpack.Marshal(entry)
	if err != nil {
		return domain.RiskHistory{}, apperrors.Wrap(apperrors.KindPersistence, "encode risk history entry", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO risk_history (contract_id, analyzed_at, score, payload)
		VALUES (?, ?, ?, ?)`,
		contractID, entry.AnalyzedAt, entry.Score, blob)
	if err != nil {
		return domain.RiskHistory{}, apperrors.Wrap(apperrors.KindPersistence, "insert risk history entry", err)
	}
	if err := r.trim(ctx, contractID); err != nil {
		return domain.RiskHistory{}, err
	}
	return r.mustFind(ctx, contractID)
}

// trim deletes the oldest rows beyond domain.MaxHistoryEntries for contractID.
func (r *RiskHistoryRepo) trim(ctx context.Context, contractID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM risk_history
		WHERE contract_id = ? AND analyzed_at NOT IN (
			SELECT analyzed_at FROM risk_history
			WHERE contract_id = ?
			ORDER BY analyzed_at DESC
			LIMIT ?
		)`, contractID, contractID, domain.MaxHistoryEntries)
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, "trim risk history", err)
	}
	return nil
}

func (r *RiskHistoryRepo) mustFind(ctx context.Context, contractID string) (domain.RiskHistory, error) {
	h, err := r.FindByContractID(ctx, contractID)
	if err != nil {
		return domain.RiskHistory{}, err
	}
	return *h, nil
}

// Update replaces the full stored entry set for h.ContractID.
func (r *RiskHistoryRepo) Update(ctx context.Context, h domain.RiskHistory) (domain.RiskHistory, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.RiskHistory{}, apperrors.Wrap(apperrors.KindPersistence, "begin risk history update", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM risk_history WHERE contract_id = ?`, h.ContractID); err != nil {
		return domain.RiskHistory{}, apperrors.Wrap(apperrors.KindPersistence, "clear risk history", err)
	}
	for _, e := range h.Entries {
		blob, err := msgpack.Marshal(e)
		if err != nil {
			return domain.RiskHistory{}, apperrors.Wrap(apperrors.KindPersistence, "encode risk history entry", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO risk_history (contract_id, analyzed_at, score, payload)
			VALUES (?, ?, ?, ?)`, h.ContractID, e.AnalyzedAt, e.Score, blob); err != nil {
			return domain.RiskHistory{}, apperrors.Wrap(apperrors.KindPersistence, "insert risk history entry", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.RiskHistory{}, apperrors.Wrap(apperrors.KindPersistence, "commit risk history update", err)
	}
	return h, nil
}

func (r *RiskHistoryRepo) DeleteByContractID(ctx context.Context, contractID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM risk_history WHERE contract_id = ?`, contractID)
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, "delete risk history", err)
	}
	return nil
}
