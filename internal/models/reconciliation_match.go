package models

import (
	"time"

	"github.com/google/uuid"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceManual Confidence = "manual"
)

// Rank orders confidences for sorting; manual ranks above high.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceManual:
		return 4
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	}
	return 0
}

type MatchType string

const (
	MatchTypeExact  MatchType = "exact"
	MatchTypeFuzzy  MatchType = "fuzzy"
	MatchTypeManual MatchType = "manual"
)

const MatchStatusMatched = "matched"

// ReconciliationMatch is a confirmed pairing. Rows are never updated.
type ReconciliationMatch struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID             uuid.UUID  `gorm:"type:uuid;index;not null" json:"session_id"`
	BankTransactionID     uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"bank_transaction_id"`
	InternalTransactionID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"internal_transaction_id"`
	Status                string     `gorm:"type:varchar(16);not null" json:"status"`
	Confidence            Confidence `gorm:"type:varchar(16);not null" json:"confidence"`
	MatchType             MatchType  `gorm:"type:varchar(16);not null" json:"match_type"`
	MatchedBy             string     `json:"matched_by"`
	MatchedAt             time.Time  `json:"matched_at"`
	Notes                 string     `json:"notes"`
}
