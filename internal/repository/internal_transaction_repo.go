package repository

import (
	"context"

	"reconciliation-engine/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InternalTransactionRepository struct {
	db *gorm.DB
}

func NewInternalTransactionRepository(db *gorm.DB) *InternalTransactionRepository {
	return &InternalTransactionRepository{db: db}
}

func (r *InternalTransactionRepository) WithTx(tx *gorm.DB) *InternalTransactionRepository {
	return &InternalTransactionRepository{db: tx}
}

func (r *InternalTransactionRepository) Create(ctx context.Context, txs []models.InternalTransaction) (int64, error) {
	if len(txs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).CreateInBatches(&txs, insertBatchSize)
	return result.RowsAffected, result.Error
}

func (r *InternalTransactionRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, unreconciledOnly bool) ([]models.InternalTransaction, error) {
	var txs []models.InternalTransaction
	q := r.db.WithContext(ctx).Where("session_id = ?", sessionID)
	if unreconciledOnly {
		q = q.Where("is_reconciled = ?", false)
	}
	err := q.Order("transaction_date ASC").Order("created_at ASC").Find(&txs).Error
	return txs, err
}

func (r *InternalTransactionRepository) GetInSession(ctx context.Context, sessionID, id uuid.UUID) (*models.InternalTransaction, error) {
	var tx models.InternalTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ? AND session_id = ?", id, sessionID).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *InternalTransactionRepository) MarkReconciled(ctx context.Context, sessionID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.InternalTransaction{}).
		Where("id = ? AND session_id = ? AND is_reconciled = ?", id, sessionID, false).
		Update("is_reconciled", true)
	return result.RowsAffected == 1, result.Error
}

func (r *InternalTransactionRepository) Counts(ctx context.Context, sessionID uuid.UUID) (total, reconciled int64, err error) {
	if err = r.db.WithContext(ctx).Model(&models.InternalTransaction{}).
		Where("session_id = ?", sessionID).
		Count(&total).Error; err != nil {
		return
	}
	err = r.db.WithContext(ctx).Model(&models.InternalTransaction{}).
		Where("session_id = ? AND is_reconciled = ?", sessionID, true).
		Count(&reconciled).Error
	return
}
