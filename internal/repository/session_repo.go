package repository

import (
	"context"
	"time"

	"reconciliation-engine/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// WithTx returns a copy bound to tx.
func (r *SessionRepository) WithTx(tx *gorm.DB) *SessionRepository {
	return &SessionRepository{db: tx}
}

func (r *SessionRepository) Create(ctx context.Context, s *models.ReconciliationSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// GetByID returns gorm.ErrRecordNotFound when the session does not exist.
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReconciliationSession, error) {
	var s models.ReconciliationSession
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.ReconciliationSession, error) {
	var sessions []models.ReconciliationSession
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus) error {
	return r.db.WithContext(ctx).Model(&models.ReconciliationSession{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

// UpdateCounts writes the counters and status in one statement.
func (r *SessionRepository) UpdateCounts(ctx context.Context, id uuid.UUID, total, matched int, status models.SessionStatus, completedAt *time.Time) error {
	return r.db.WithContext(ctx).Model(&models.ReconciliationSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_transactions":     total,
			"matched_transactions":   matched,
			"unmatched_transactions": total - matched,
			"status":                 status,
			"completed_at":           completedAt,
		}).Error
}
