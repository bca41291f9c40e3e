package reconciliation

import (
	"context"

	"reconciliation-engine/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReportSummary struct {
	TotalBankTransactions     int             `json:"total_bank_transactions"`
	TotalInternalTransactions int             `json:"total_internal_transactions"`
	MatchedTransactions       int             `json:"matched_transactions"`
	UnmatchedTransactions     int             `json:"unmatched_transactions"`
	TotalBankAmount           decimal.Decimal `json:"total_bank_amount"`
	TotalInternalAmount       decimal.Decimal `json:"total_internal_amount"`
	Difference                decimal.Decimal `json:"difference"`
}

type Report struct {
	Session           models.ReconciliationSession `json:"session"`
	Summary           ReportSummary                `json:"summary"`
	Matches           []models.ReconciliationMatch `json:"matches"`
	UnmatchedBank     []models.BankTransaction     `json:"unmatched_bank"`
	UnmatchedInternal []models.InternalTransaction `json:"unmatched_internal"`
	AuditLog          []models.MatchAuditLog       `json:"audit_log"`
}

// GenerateReport summarises a session. Amount totals include reconciled and
// unreconciled rows alike.
//
// UnmatchedTransactions is bank rows + internal rows - matches, so each
// match removes one unit rather than two. Existing reports depend on this
// figure; the per-side unmatched lists are exact.
func (s *ReconciliationService) GenerateReport(ctx context.Context, sessionID uuid.UUID) (*Report, error) {
	ctx, span := tracer.Start(ctx, "ReconciliationService.GenerateReport")
	defer span.End()

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	bank, err := s.bankTxs.ListBySession(ctx, sessionID, false)
	if err != nil {
		return nil, err
	}
	internal, err := s.internalTxs.ListBySession(ctx, sessionID, false)
	if err != nil {
		return nil, err
	}
	matches, err := s.matches.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	auditLog, err := s.matches.ListAuditLogs(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Session:           *session,
		Matches:           matches,
		AuditLog:          auditLog,
		UnmatchedBank:     []models.BankTransaction{},
		UnmatchedInternal: []models.InternalTransaction{},
	}

	bankTotal := decimal.Zero
	for _, t := range bank {
		bankTotal = bankTotal.Add(t.Amount)
		if !t.IsReconciled {
			report.UnmatchedBank = append(report.UnmatchedBank, t)
		}
	}
	internalTotal := decimal.Zero
	for _, t := range internal {
		internalTotal = internalTotal.Add(t.Amount)
		if !t.IsReconciled {
			report.UnmatchedInternal = append(report.UnmatchedInternal, t)
		}
	}

	report.Summary = ReportSummary{
		TotalBankTransactions:     len(bank),
		TotalInternalTransactions: len(internal),
		MatchedTransactions:       len(matches),
		UnmatchedTransactions:     len(bank) + len(internal) - len(matches),
		TotalBankAmount:           bankTotal,
		TotalInternalAmount:       internalTotal,
		Difference:                bankTotal.Sub(internalTotal).Abs(),
	}
	return report, nil
}
