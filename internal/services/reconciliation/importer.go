package reconciliation

import (
	"context"
	"fmt"
	"time"

	"reconciliation-engine/internal/config"
	"reconciliation-engine/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type BankTransactionInput struct {
	ExternalTransactionID string          `json:"external_transaction_id" validate:"required,max=255"`
	Date                  time.Time       `json:"date"`
	Amount                decimal.Decimal `json:"amount"`
	Description           string          `json:"description"`
	Reference             string          `json:"reference"`
	Memo                  string          `json:"memo"`
	Category              string          `json:"category"`
	Merchant              string          `json:"merchant"`
	IsPending             bool            `json:"is_pending"`
}

type InternalTransactionInput struct {
	EntityType  string          `json:"entity_type" validate:"max=64"`
	EntityID    string          `json:"entity_id" validate:"max=255"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Account     string          `json:"account"`
}

type ImportResult struct {
	Inserted int                           `json:"inserted"`
	Skipped  int                           `json:"skipped"`
	Session  *models.ReconciliationSession `json:"session"`
}

// ImportBankTransactions stores records whose external id has not been seen
// before in any session; repeats are counted as skipped.
func (s *ReconciliationService) ImportBankTransactions(ctx context.Context, sessionID uuid.UUID, records []BankTransactionInput) (*ImportResult, error) {
	ctx, span := tracer.Start(ctx, "ReconciliationService.ImportBankTransactions")
	defer span.End()

	seen := make(map[string]struct{}, len(records))
	rows := make([]models.BankTransaction, 0, len(records))
	now := s.now()
	for i, r := range records {
		if err := s.validate.Struct(r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, fromValidator(err))
		}
		if r.Date.IsZero() {
			return nil, fmt.Errorf("record %d: %w", i, invalid("date is required"))
		}
		if _, dup := seen[r.ExternalTransactionID]; dup {
			continue
		}
		seen[r.ExternalTransactionID] = struct{}{}

		rows = append(rows, models.BankTransaction{
			ID:                    uuid.New(),
			SessionID:             sessionID,
			ExternalTransactionID: r.ExternalTransactionID,
			Date:                  r.Date,
			Amount:                r.Amount,
			Description:           r.Description,
			Reference:             r.Reference,
			Memo:                  r.Memo,
			Category:              r.Category,
			Merchant:              r.Merchant,
			IsPending:             r.IsPending,
			IsReconciled:          false,
			CreatedAt:             now,
		})
	}

	result := &ImportResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.sessions.WithTx(tx).GetByID(ctx, sessionID); err != nil {
			return notFound("session", err)
		}

		inserted, err := s.bankTxs.WithTx(tx).CreateIgnoringDuplicates(ctx, rows)
		if err != nil {
			return err
		}
		result.Inserted = int(inserted)
		result.Skipped = len(records) - result.Inserted

		result.Session, err = s.recomputeCounts(ctx, tx, sessionID)
		return err
	})
	if err != nil {
		config.LogError(s.logger, moduleName, "ImportBankTransactions", "transaction", sessionID, err)
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"inserted":   result.Inserted,
		"skipped":    result.Skipped,
	}).Info("bank transactions imported")
	return result, nil
}

// ImportInternalTransactions stores every record; book entries are not deduplicated.
func (s *ReconciliationService) ImportInternalTransactions(ctx context.Context, sessionID uuid.UUID, records []InternalTransactionInput) (*ImportResult, error) {
	ctx, span := tracer.Start(ctx, "ReconciliationService.ImportInternalTransactions")
	defer span.End()

	rows := make([]models.InternalTransaction, 0, len(records))
	now := s.now()
	for i, r := range records {
		if err := s.validate.Struct(r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, fromValidator(err))
		}
		if r.Date.IsZero() {
			return nil, fmt.Errorf("record %d: %w", i, invalid("date is required"))
		}
		rows = append(rows, models.InternalTransaction{
			ID:           uuid.New(),
			SessionID:    sessionID,
			EntityType:   r.EntityType,
			EntityID:     r.EntityID,
			Date:         r.Date,
			Amount:       r.Amount,
			Description:  r.Description,
			Account:      r.Account,
			IsReconciled: false,
			CreatedAt:    now,
		})
	}

	result := &ImportResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.sessions.WithTx(tx).GetByID(ctx, sessionID); err != nil {
			return notFound("session", err)
		}

		inserted, err := s.internalTxs.WithTx(tx).Create(ctx, rows)
		if err != nil {
			return err
		}
		result.Inserted = int(inserted)

		result.Session, err = s.recomputeCounts(ctx, tx, sessionID)
		return err
	})
	if err != nil {
		config.LogError(s.logger, moduleName, "ImportInternalTransactions", "transaction", sessionID, err)
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"inserted":   result.Inserted,
	}).Info("internal transactions imported")
	return result, nil
}
