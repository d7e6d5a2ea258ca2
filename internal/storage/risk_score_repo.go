package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/prabhnoor12/cleardeal-ai/internal/apperrors"
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/scoring"
)

// RiskScoreRepo is the SQLite-backed implementation of domain.RiskScoreRepo:
// one current row per contract, upserted on every analysis.
type RiskScoreRepo struct {
	db *sql.DB
}

// NewRiskScoreRepo constructs a RiskScoreRepo over db.
func NewRiskScoreRepo(db *sql.DB) *RiskScoreRepo {
	return &RiskScoreRepo{db: db}
}

func (r *RiskScoreRepo) FindByContractID(ctx context.Context, contractID string) (*domain.RiskScore, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM risk_scores WHERE contract_id = ?`, contractID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("risk score", contractID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "find risk score", err)
	}
	var s domain.RiskScore
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "decode risk score", err)
	}
	return &s, nil
}

func (r *RiskScoreRepo) Create(ctx context.Context, s domain.RiskScore) (domain.RiskScore, error) {
	if s.CalculatedAt.IsZero() {
		s.CalculatedAt = time.Now()
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return domain.RiskScore{}, apperrors.Wrap(apperrors.KindPersistence, "encode risk score", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO risk_scores (contract_id, score, level, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.ContractID, s.Score, scoring.Label(s.Score), string(payload), s.CalculatedAt)
	if err != nil {
		return domain.RiskScore{}, apperrors.Wrap(apperrors.KindPersistence, "insert risk score", err)
	}
	return s, nil
}

func (r *RiskScoreRepo) Update(ctx context.Context, s domain.RiskScore) (domain.RiskScore, error) {
	if s.CalculatedAt.IsZero() {
		s.CalculatedAt = time.Now()
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return domain.RiskScore{}, apperrors.Wrap(apperrors.KindPersistence, "encode risk score", err)
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE risk_scores SET score = ?, level = ?, payload = ?, updated_at = ?
		WHERE contract_id = ?`,
		s.Score, scoring.Label(s.Score), string(payload), s.CalculatedAt, s.ContractID)
	if err != nil {
		return domain.RiskScore{}, apperrors.Wrap(apperrors.KindPersistence, "update risk score", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.RiskScore{}, apperrors.NotFound("risk score", s.ContractID)
	}
	return s, nil
}

func (r *RiskScoreRepo) DeleteByContractID(ctx context.Context, contractID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM risk_scores WHERE contract_id = ?`, contractID)
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, "delete risk score", err)
	}
	return nil
}
