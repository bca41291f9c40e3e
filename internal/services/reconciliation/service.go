package reconciliation

import (
	"context"
	"time"

	"reconciliation-engine/internal/config"
	"reconciliation-engine/internal/models"
	"reconciliation-engine/internal/repository"

	"github.com/bsm/redislock"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

const moduleName = "reconciliation"

var tracer = otel.Tracer("reconciliation-engine/reconciliation")

type ReconciliationService struct {
	db          *gorm.DB
	sessions    *repository.SessionRepository
	bankTxs     *repository.BankTransactionRepository
	internalTxs *repository.InternalTransactionRepository
	matches     *repository.MatchRepository

	// locker is optional; confirmations are still at-most-once without it.
	locker   *redislock.Client
	validate *validator.Validate
	logger   *logrus.Logger
	now      func() time.Time
}

func NewReconciliationService(db *gorm.DB, locker *redislock.Client) *ReconciliationService {
	return &ReconciliationService{
		db:          db,
		sessions:    repository.NewSessionRepository(db),
		bankTxs:     repository.NewBankTransactionRepository(db),
		internalTxs: repository.NewInternalTransactionRepository(db),
		matches:     repository.NewMatchRepository(db),
		locker:      locker,
		validate:    validator.New(),
		logger:      config.GetLogger(),
		now:         time.Now,
	}
}

type CreateSessionParams struct {
	Name            string             `json:"name" validate:"required,max=255"`
	Type            models.SessionType `json:"type"`
	PeriodStart     time.Time          `json:"period_start"`
	PeriodEnd       time.Time          `json:"period_end"`
	AmountTolerance *decimal.Decimal   `json:"amount_tolerance"`
	DateTolerance   *int               `json:"date_tolerance" validate:"omitempty,gte=0"`
}

// CreateSession starts an active session with zero counts.
func (s *ReconciliationService) CreateSession(ctx context.Context, ownerID string, p CreateSessionParams) (*models.ReconciliationSession, error) {
	ctx, span := tracer.Start(ctx, "ReconciliationService.CreateSession")
	defer span.End()

	if ownerID == "" {
		return nil, invalid("owner is required")
	}
	if err := s.validate.Struct(p); err != nil {
		return nil, fromValidator(err)
	}
	if p.PeriodStart.IsZero() || p.PeriodEnd.IsZero() {
		return nil, invalid("period start and end are required")
	}
	if p.PeriodStart.After(p.PeriodEnd) {
		return nil, invalid("period start %s is after period end %s",
			p.PeriodStart.Format(time.DateOnly), p.PeriodEnd.Format(time.DateOnly))
	}

	sessionType := p.Type
	if sessionType == "" {
		sessionType = models.SessionTypeBankToBook
	}
	if !sessionType.Valid() {
		return nil, invalid("unknown session type %q", sessionType)
	}

	amountTolerance := models.DefaultAmountTolerance
	if p.AmountTolerance != nil {
		if p.AmountTolerance.IsNegative() {
			return nil, invalid("amount tolerance must not be negative")
		}
		amountTolerance = *p.AmountTolerance
	}
	dateTolerance := models.DefaultDateToleranceDays
	if p.DateTolerance != nil {
		dateTolerance = *p.DateTolerance
	}

	now := s.now()
	session := &models.ReconciliationSession{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Name:            p.Name,
		Type:            sessionType,
		PeriodStart:     p.PeriodStart,
		PeriodEnd:       p.PeriodEnd,
		AmountTolerance: amountTolerance,
		DateTolerance:   dateTolerance,
		Status:          models.SessionStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		config.LogError(s.logger, moduleName, "CreateSession", "sessions.Create", p, err)
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"owner_id":   ownerID,
		"type":       sessionType,
	}).Info("reconciliation session created")
	return session, nil
}

func (s *ReconciliationService) GetSession(ctx context.Context, id uuid.UUID) (*models.ReconciliationSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("session", err)
	}
	return session, nil
}

func (s *ReconciliationService) ListSessions(ctx context.Context, ownerID string) ([]models.ReconciliationSession, error) {
	if ownerID == "" {
		return nil, invalid("owner is required")
	}
	return s.sessions.ListByOwner(ctx, ownerID)
}

// CancelSession moves an active session to cancelled. Completed sessions stay completed.
func (s *ReconciliationService) CancelSession(ctx context.Context, id uuid.UUID) (*models.ReconciliationSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	switch session.Status {
	case models.SessionStatusCancelled:
		return session, nil
	case models.SessionStatusCompleted:
		return nil, invalid("session %s is already completed", id)
	}

	if err := s.sessions.UpdateStatus(ctx, id, models.SessionStatusCancelled); err != nil {
		return nil, err
	}
	session.Status = models.SessionStatusCancelled
	return session, nil
}

// RecomputeCounts refreshes the session counters from both transaction
// tables. It is idempotent.
func (s *ReconciliationService) RecomputeCounts(ctx context.Context, sessionID uuid.UUID) (*models.ReconciliationSession, error) {
	var session *models.ReconciliationSession
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		session, err = s.recomputeCounts(ctx, tx, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ReconciliationService) recomputeCounts(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*models.ReconciliationSession, error) {
	sessions := s.sessions.WithTx(tx)
	session, err := sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, notFound("session", err)
	}

	bankTotal, bankMatched, err := s.bankTxs.WithTx(tx).Counts(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	internalTotal, internalMatched, err := s.internalTxs.WithTx(tx).Counts(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	total := int(bankTotal + internalTotal)
	matched := int(bankMatched + internalMatched)

	status := session.Status
	completedAt := session.CompletedAt
	if status != models.SessionStatusCancelled {
		if total > 0 && matched == total {
			status = models.SessionStatusCompleted
			if completedAt == nil {
				now := s.now()
				completedAt = &now
			}
		} else {
			status = models.SessionStatusActive
			completedAt = nil
		}
	}

	if err := sessions.UpdateCounts(ctx, sessionID, total, matched, status, completedAt); err != nil {
		return nil, err
	}

	session.TotalTransactions = total
	session.MatchedTransactions = matched
	session.UnmatchedTransactions = total - matched
	session.Status = status
	session.CompletedAt = completedAt
	return session, nil
}
