package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	AuditActionManualMatch = "manual_match"
	AuditActionAutoMatch   = "auto_match"
)

// MatchAuditLog records who confirmed a match and the scores seen at the time.
type MatchAuditLog struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID             uuid.UUID      `gorm:"type:uuid;index" json:"session_id"`
	MatchID               uuid.UUID      `gorm:"type:uuid;index" json:"match_id"`
	BankTransactionID     uuid.UUID      `gorm:"type:uuid" json:"bank_transaction_id"`
	InternalTransactionID uuid.UUID      `gorm:"type:uuid" json:"internal_transaction_id"`
	Action                string         `json:"action"`
	PerformedBy           string         `json:"performed_by"`
	Details               datatypes.JSON `json:"details"`
	CreatedAt             time.Time      `json:"created_at"`
}

// AllModels lists every table owned by the service, in migration order.
func AllModels() []any {
	return []any{
		&ReconciliationSession{},
		&BankTransaction{},
		&InternalTransaction{},
		&ReconciliationMatch{},
		&MatchAuditLog{},
	}
}
