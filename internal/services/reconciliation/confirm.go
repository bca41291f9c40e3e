package reconciliation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reconciliation-engine/internal/config"
	"reconciliation-engine/internal/models"
	"reconciliation-engine/internal/services/matching"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	sessionLockTTL     = 30 * time.Second
	sessionLockBackoff = 100 * time.Millisecond
	sessionLockRetries = 50
)

// pairing describes one match about to be written.
type pairing struct {
	bankID     uuid.UUID
	internalID uuid.UUID
	confidence models.Confidence
	matchType  models.MatchType
	action     string
	details    map[string]interface{}
}

// CreateMatch confirms a manual pairing. The match insert, both reconciled
// flags and the session counters are written in one transaction; if either
// side was already reconciled nothing is written and ErrAlreadyReconciled is
// returned.
func (s *ReconciliationService) CreateMatch(ctx context.Context, sessionID, bankTxnID, internalTxnID uuid.UUID, matchedBy, notes string) (*models.ReconciliationMatch, error) {
	ctx, span := tracer.Start(ctx, "ReconciliationService.CreateMatch")
	defer span.End()

	unlock := s.lockSession(ctx, sessionID)
	defer unlock()

	var match *models.ReconciliationMatch
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkSessionOpen(ctx, tx, sessionID); err != nil {
			return err
		}

		var err error
		match, err = s.confirmPair(ctx, tx, sessionID, pairing{
			bankID:     bankTxnID,
			internalID: internalTxnID,
			confidence: models.ConfidenceManual,
			matchType:  models.MatchTypeManual,
			action:     models.AuditActionManualMatch,
		}, matchedBy, notes)
		if err != nil {
			return err
		}

		_, err = s.recomputeCounts(ctx, tx, sessionID)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrAlreadyReconciled) && !errors.Is(err, ErrNotFound) {
			config.LogError(s.logger, moduleName, "CreateMatch", "transaction", map[string]any{
				"session_id":  sessionID,
				"bank_id":     bankTxnID,
				"internal_id": internalTxnID,
			}, err)
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id":  sessionID,
		"match_id":    match.ID,
		"matched_by":  matchedBy,
		"bank_id":     bankTxnID,
		"internal_id": internalTxnID,
	}).Info("match confirmed")
	return match, nil
}

// AutoMatch confirms the ranked candidates whose confidence is at least
// minConfidence, taking each transaction at most once. Higher-ranked
// candidates win. All confirmations are written in a single transaction.
func (s *ReconciliationService) AutoMatch(ctx context.Context, sessionID uuid.UUID, matchedBy string, minConfidence models.Confidence) ([]models.ReconciliationMatch, error) {
	ctx, span := tracer.Start(ctx, "ReconciliationService.AutoMatch")
	defer span.End()

	if minConfidence == "" {
		minConfidence = models.ConfidenceHigh
	}
	switch minConfidence {
	case models.ConfidenceHigh, models.ConfidenceMedium, models.ConfidenceLow:
	default:
		return nil, invalid("unsupported minimum confidence %q", minConfidence)
	}

	unlock := s.lockSession(ctx, sessionID)
	defer unlock()

	if err := s.checkSessionOpen(ctx, s.db, sessionID); err != nil {
		return nil, err
	}

	candidates, err := s.FindMatches(ctx, sessionID, nil)
	if err != nil {
		return nil, err
	}

	usedBank := make(map[uuid.UUID]struct{})
	usedInternal := make(map[uuid.UUID]struct{})
	var picks []matching.MatchResult
	for _, c := range candidates {
		if c.Confidence.Rank() < minConfidence.Rank() {
			continue
		}
		if _, ok := usedBank[c.BankTransaction.ID]; ok {
			continue
		}
		if _, ok := usedInternal[c.InternalTransaction.ID]; ok {
			continue
		}
		usedBank[c.BankTransaction.ID] = struct{}{}
		usedInternal[c.InternalTransaction.ID] = struct{}{}
		picks = append(picks, c)
	}

	created := make([]models.ReconciliationMatch, 0, len(picks))
	if len(picks) == 0 {
		return created, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkSessionOpen(ctx, tx, sessionID); err != nil {
			return err
		}
		for _, c := range picks {
			m, err := s.confirmPair(ctx, tx, sessionID, pairing{
				bankID:     c.BankTransaction.ID,
				internalID: c.InternalTransaction.ID,
				confidence: c.Confidence,
				matchType:  c.MatchType,
				action:     models.AuditActionAutoMatch,
				details: map[string]interface{}{
					"amount_difference":      c.AmountDifference.String(),
					"date_difference":        c.DateDifference,
					"description_similarity": c.DescriptionSimilarity,
					"min_confidence":         minConfidence,
				},
			}, matchedBy, "")
			if err != nil {
				return err
			}
			created = append(created, *m)
		}
		_, err := s.recomputeCounts(ctx, tx, sessionID)
		return err
	})
	if err != nil {
		config.LogError(s.logger, moduleName, "AutoMatch", "transaction", sessionID, err)
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id":     sessionID,
		"matched":        len(created),
		"min_confidence": minConfidence,
	}).Info("auto match completed")
	return created, nil
}

func (s *ReconciliationService) checkSessionOpen(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) error {
	session, err := s.sessions.WithTx(tx).GetByID(ctx, sessionID)
	if err != nil {
		return notFound("session", err)
	}
	if session.Status == models.SessionStatusCancelled {
		return invalid("session %s is cancelled", sessionID)
	}
	return nil
}

// confirmPair flips both reconciled flags with a conditional update and
// writes the match and its audit row. It must run inside tx.
func (s *ReconciliationService) confirmPair(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, p pairing, matchedBy, notes string) (*models.ReconciliationMatch, error) {
	bankTxs := s.bankTxs.WithTx(tx)
	internalTxs := s.internalTxs.WithTx(tx)
	matches := s.matches.WithTx(tx)

	if _, err := bankTxs.GetInSession(ctx, sessionID, p.bankID); err != nil {
		return nil, notFound("bank transaction", err)
	}
	if _, err := internalTxs.GetInSession(ctx, sessionID, p.internalID); err != nil {
		return nil, notFound("internal transaction", err)
	}

	ok, err := bankTxs.MarkReconciled(ctx, sessionID, p.bankID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("bank transaction %s: %w", p.bankID, ErrAlreadyReconciled)
	}
	ok, err = internalTxs.MarkReconciled(ctx, sessionID, p.internalID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("internal transaction %s: %w", p.internalID, ErrAlreadyReconciled)
	}

	now := s.now()
	match := &models.ReconciliationMatch{
		ID:                    uuid.New(),
		SessionID:             sessionID,
		BankTransactionID:     p.bankID,
		InternalTransactionID: p.internalID,
		Status:                models.MatchStatusMatched,
		Confidence:            p.confidence,
		MatchType:             p.matchType,
		MatchedBy:             matchedBy,
		MatchedAt:             now,
		Notes:                 notes,
	}
	if err := matches.Create(ctx, match); err != nil {
		return nil, err
	}

	details := map[string]interface{}{
		"confidence": p.confidence,
		"match_type": p.matchType,
	}
	for k, v := range p.details {
		details[k] = v
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("encode audit details: %w", err)
	}

	if err := matches.CreateAuditLog(ctx, &models.MatchAuditLog{
		ID:                    uuid.New(),
		SessionID:             sessionID,
		MatchID:               match.ID,
		BankTransactionID:     p.bankID,
		InternalTransactionID: p.internalID,
		Action:                p.action,
		PerformedBy:           matchedBy,
		Details:               datatypes.JSON(detailsJSON),
		CreatedAt:             now,
	}); err != nil {
		return nil, err
	}
	return match, nil
}

// lockSession serialises confirmations for a session across instances when
// redis is configured. Failing to obtain the lock is logged and ignored: the
// conditional updates in confirmPair still keep matches at-most-once.
func (s *ReconciliationService) lockSession(ctx context.Context, sessionID uuid.UUID) func() {
	if s.locker == nil {
		return func() {}
	}

	key := fmt.Sprintf("lock:reconciliation:%s", sessionID)
	lock, err := s.locker.Obtain(ctx, key, sessionLockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(sessionLockBackoff), sessionLockRetries),
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("could not obtain session lock; proceeding without redis lock")
		return func() {}
	}

	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			s.logger.WithField("session_id", sessionID).WithError(err).Warn("failed to release session lock")
		}
	}
}
