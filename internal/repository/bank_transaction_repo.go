package repository

import (
	"context"

	"reconciliation-engine/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 200

type BankTransactionRepository struct {
	db *gorm.DB
}

func NewBankTransactionRepository(db *gorm.DB) *BankTransactionRepository {
	return &BankTransactionRepository{db: db}
}

func (r *BankTransactionRepository) WithTx(tx *gorm.DB) *BankTransactionRepository {
	return &BankTransactionRepository{db: tx}
}

// CreateIgnoringDuplicates inserts txs, silently skipping rows whose
// external_transaction_id already exists in any session. It returns the
// number of rows actually inserted.
func (r *BankTransactionRepository) CreateIgnoringDuplicates(ctx context.Context, txs []models.BankTransaction) (int64, error) {
	if len(txs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_transaction_id"}},
			DoNothing: true,
		}).
		CreateInBatches(&txs, insertBatchSize)
	return result.RowsAffected, result.Error
}

// ListBySession returns the session's rows in date order. With
// unreconciledOnly set, rows already paired are left out.
func (r *BankTransactionRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, unreconciledOnly bool) ([]models.BankTransaction, error) {
	var txs []models.BankTransaction
	q := r.db.WithContext(ctx).Where("session_id = ?", sessionID)
	if unreconciledOnly {
		q = q.Where("is_reconciled = ?", false)
	}
	err := q.Order("transaction_date ASC").Order("created_at ASC").Find(&txs).Error
	return txs, err
}

func (r *BankTransactionRepository) GetInSession(ctx context.Context, sessionID, id uuid.UUID) (*models.BankTransaction, error) {
	var tx models.BankTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ? AND session_id = ?", id, sessionID).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

// MarkReconciled flips is_reconciled only if it is still false. It reports
// whether a row changed.
func (r *BankTransactionRepository) MarkReconciled(ctx context.Context, sessionID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.BankTransaction{}).
		Where("id = ? AND session_id = ? AND is_reconciled = ?", id, sessionID, false).
		Update("is_reconciled", true)
	return result.RowsAffected == 1, result.Error
}

// Counts returns the number of rows in the session and how many are reconciled.
func (r *BankTransactionRepository) Counts(ctx context.Context, sessionID uuid.UUID) (total, reconciled int64, err error) {
	if err = r.db.WithContext(ctx).Model(&models.BankTransaction{}).
		Where("session_id = ?", sessionID).
		Count(&total).Error; err != nil {
		return
	}
	err = r.db.WithContext(ctx).Model(&models.BankTransaction{}).
		Where("session_id = ? AND is_reconciled = ?", sessionID, true).
		Count(&reconciled).Error
	return
}
