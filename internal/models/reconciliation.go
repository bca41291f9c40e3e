package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SessionType string

const (
	SessionTypeBankToBook            SessionType = "bank_to_book"
	SessionTypeInterCompany          SessionType = "inter_company"
	SessionTypeAccountReconciliation SessionType = "account_reconciliation"
	SessionTypeVendorReconciliation  SessionType = "vendor_reconciliation"
)

func (t SessionType) Valid() bool {
	switch t {
	case SessionTypeBankToBook, SessionTypeInterCompany, SessionTypeAccountReconciliation, SessionTypeVendorReconciliation:
		return true
	}
	return false
}

type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

var (
	DefaultAmountTolerance   = decimal.NewFromFloat(0.01)
	DefaultDateToleranceDays = 3
)

// ReconciliationSession is a bounded reconciliation effort over a date range.
type ReconciliationSession struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID               string          `gorm:"index;not null" json:"owner_id"`
	Name                  string          `gorm:"not null" json:"name"`
	Type                  SessionType     `gorm:"type:varchar(32);not null" json:"type"`
	PeriodStart           time.Time       `json:"period_start"`
	PeriodEnd             time.Time       `json:"period_end"`
	AmountTolerance       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount_tolerance"`
	DateTolerance         int             `json:"date_tolerance"`
	Status                SessionStatus   `gorm:"type:varchar(16);index;not null" json:"status"`
	TotalTransactions     int             `json:"total_transactions"`
	MatchedTransactions   int             `json:"matched_transactions"`
	UnmatchedTransactions int             `json:"unmatched_transactions"`
	CompletedAt           *time.Time      `json:"completed_at"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
