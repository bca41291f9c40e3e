package handler

import (
	"context"

	"reconciliation-engine/internal/models"
	"reconciliation-engine/internal/services/matching"
	service "reconciliation-engine/internal/services/reconciliation"

	"github.com/google/uuid"
)

// ReconciliationService is what the HTTP layer needs from the service.
//
//go:generate mockgen -destination=mocks/mock_service.go -package=mock_handler -source=interface.go ReconciliationService
type ReconciliationService interface {
	CreateSession(ctx context.Context, ownerID string, p service.CreateSessionParams) (*models.ReconciliationSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.ReconciliationSession, error)
	ListSessions(ctx context.Context, ownerID string) ([]models.ReconciliationSession, error)
	CancelSession(ctx context.Context, id uuid.UUID) (*models.ReconciliationSession, error)
	ImportBankTransactions(ctx context.Context, sessionID uuid.UUID, records []service.BankTransactionInput) (*service.ImportResult, error)
	ImportInternalTransactions(ctx context.Context, sessionID uuid.UUID, records []service.InternalTransactionInput) (*service.ImportResult, error)
	FindMatches(ctx context.Context, sessionID uuid.UUID, criteria *service.MatchCriteria) ([]matching.MatchResult, error)
	CreateMatch(ctx context.Context, sessionID, bankTxnID, internalTxnID uuid.UUID, matchedBy, notes string) (*models.ReconciliationMatch, error)
	AutoMatch(ctx context.Context, sessionID uuid.UUID, matchedBy string, minConfidence models.Confidence) ([]models.ReconciliationMatch, error)
	GenerateReport(ctx context.Context, sessionID uuid.UUID) (*service.Report, error)
}
