// Package storage implements SQLite-backed repositories for the domain
// repo ports, grounded on the teacher's allowlisted-table, JSON-blob
// persistence pattern (internal/clientdata/repository.go).
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/prabhnoor12/cleardeal-ai/internal/apperrors"
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// ContractRepo is the SQLite-backed implementation of domain.ContractRepo.
// Each row stores the full Contract serialized as a JSON payload alongside
// a handful of indexed scalar columns used for lookups.
type ContractRepo struct {
	db *sql.DB
}

// NewContractRepo constructs a ContractRepo over db. The contracts table
// is expected to already exist (see internal/database/schemas).
func NewContractRepo(db *sql.DB) *ContractRepo {
	return &ContractRepo{db: db}
}

func (r *ContractRepo) FindByID(ctx context.Context, id string) (*domain.Contract, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM contracts WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("contract", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "find contract", err)
	}
	var c domain.Contract
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "decode contract", err)
	}
	return &c, nil
}

func (r *ContractRepo) FindAll(ctx context.Context) ([]domain.Contract, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT payload FROM contracts ORDER BY created_at`)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "list contracts", err)
	}
	defer rows.Close()

	var out []domain.Contract
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, apperrors.Wrap(apperrors.KindPersistence, "scan contract", err)
		}
		var c domain.Contract
		if err := json.Unmarshal([]byte(payload), &c); err != nil {
			return nil, apperrors.Wrap(apperrors.KindPersistence, "decode contract", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ContractRepo) Create(ctx context.Context, c domain.Contract) (domain.Contract, error) {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	payload, err := json.Marshal(c)
	if err != nil {
		return domain.Contract{}, apperrors.Wrap(apperrors.KindPersistence, "encode contract", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO contracts (id, title, owner_user_id, organization_id, status, state, raw_text, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.OwnerUserID, c.OrganizationID, c.Status, c.State, c.RawText, string(payload), now, now)
	if err != nil {
		return domain.Contract{}, apperrors.Wrap(apperrors.KindPersistence, "insert contract", err)
	}
	return c, nil
}

func (r *ContractRepo) Update(ctx context.Context, id string, patch domain.Contract) (domain.Contract, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.Contract{}, err
	}

	merged := *existing
	if patch.Title != "" {
		merged.Title = patch.Title
	}
	if patch.Status != "" {
		merged.Status = patch.Status
	}
	if patch.State != "" {
		merged.State = patch.State
	}
	if patch.RawText != "" {
		merged.RawText = patch.RawText
	}
	if patch.Clauses != nil {
		merged.Clauses = patch.Clauses
	}
	if patch.Disclosures != nil {
		merged.Disclosures = patch.Disclosures
	}
	if patch.Addenda != nil {
		merged.Addenda = patch.Addenda
	}
	if patch.Documents != nil {
		merged.Documents = patch.Documents
	}
	merged.UpdatedAt = time.Now()

	payload, err := json.Marshal(merged)
	if err != nil {
		return domain.Contract{}, apperrors.Wrap(apperrors.KindPersistence, "encode contract", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE contracts SET title = ?, owner_user_id = ?, organization_id = ?, status = ?, state = ?, raw_text = ?, payload = ?, updated_at = ?
		WHERE id = ?`,
		merged.Title, merged.OwnerUserID, merged.OrganizationID, merged.Status, merged.State, merged.RawText, string(payload), merged.UpdatedAt, id)
	if err != nil {
		return domain.Contract{}, apperrors.Wrap(apperrors.KindPersistence, "update contract", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Contract{}, apperrors.NotFound("contract", id)
	}
	return merged, nil
}

func (r *ContractRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, id)
	if err != nil {
		return false, apperrors.Wrap(apperrors.KindPersistence, "delete contract", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(apperrors.KindPersistence, "delete contract", err)
	}
	return n > 0, nil
}
