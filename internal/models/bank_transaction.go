package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankTransaction is one line of the external ledger. ExternalTransactionID
// is unique across all sessions so re-imported feeds are not double counted.
type BankTransaction struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID             uuid.UUID       `gorm:"type:uuid;index;not null" json:"session_id"`
	ExternalTransactionID string          `gorm:"uniqueIndex;not null" json:"external_transaction_id"`
	Date                  time.Time       `gorm:"column:transaction_date" json:"date"`
	Amount                decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Description           string          `json:"description"`
	Reference             string          `json:"reference"`
	Memo                  string          `json:"memo"`
	Category              string          `json:"category"`
	Merchant              string          `json:"merchant"`
	IsPending             bool            `json:"is_pending"`
	IsReconciled          bool            `gorm:"index" json:"is_reconciled"`
	CreatedAt             time.Time       `json:"created_at"`
}
