package repository

import (
	"context"

	"reconciliation-engine/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) WithTx(tx *gorm.DB) *MatchRepository {
	return &MatchRepository{db: tx}
}

func (r *MatchRepository) Create(ctx context.Context, m *models.ReconciliationMatch) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MatchRepository) CreateAuditLog(ctx context.Context, l *models.MatchAuditLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *MatchRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.ReconciliationMatch, error) {
	var matches []models.ReconciliationMatch
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("matched_at ASC").
		Find(&matches).Error
	return matches, err
}

func (r *MatchRepository) ListAuditLogs(ctx context.Context, sessionID uuid.UUID) ([]models.MatchAuditLog, error) {
	var logs []models.MatchAuditLog
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
