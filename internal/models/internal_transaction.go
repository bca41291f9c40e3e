package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InternalTransaction is one line of the organisation's own books.
type InternalTransaction struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"session_id"`
	EntityType   string          `json:"entity_type"`
	EntityID     string          `json:"entity_id"`
	Date         time.Time       `gorm:"column:transaction_date" json:"date"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Description  string          `json:"description"`
	Account      string          `json:"account"`
	IsReconciled bool            `gorm:"index" json:"is_reconciled"`
	CreatedAt    time.Time       `json:"created_at"`
}
