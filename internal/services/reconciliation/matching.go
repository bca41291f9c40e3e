package reconciliation

import (
	"context"

	"reconciliation-engine/internal/services/matching"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// MatchCriteria overrides the session tolerances for a single call. Nil
// fields fall back to the session's values.
type MatchCriteria struct {
	AmountTolerance *decimal.Decimal `json:"amount_tolerance"`
	DateTolerance   *int             `json:"date_tolerance"`
}

// FindMatches proposes candidate pairs between the session's unreconciled
// bank and internal transactions. Nothing is written.
func (s *ReconciliationService) FindMatches(ctx context.Context, sessionID uuid.UUID, criteria *MatchCriteria) ([]matching.MatchResult, error) {
	ctx, span := tracer.Start(ctx, "ReconciliationService.FindMatches")
	defer span.End()

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c := matching.Criteria{
		AmountTolerance:   session.AmountTolerance,
		DateToleranceDays: session.DateTolerance,
	}
	if criteria != nil {
		if criteria.AmountTolerance != nil {
			if criteria.AmountTolerance.IsNegative() {
				return nil, invalid("amount tolerance must not be negative")
			}
			c.AmountTolerance = *criteria.AmountTolerance
		}
		if criteria.DateTolerance != nil {
			if *criteria.DateTolerance < 0 {
				return nil, invalid("date tolerance must not be negative")
			}
			c.DateToleranceDays = *criteria.DateTolerance
		}
	}

	bank, err := s.bankTxs.ListBySession(ctx, sessionID, true)
	if err != nil {
		return nil, err
	}
	internal, err := s.internalTxs.ListBySession(ctx, sessionID, true)
	if err != nil {
		return nil, err
	}

	results := matching.FindMatches(bank, internal, c)

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"bank":       len(bank),
		"internal":   len(internal),
		"candidates": len(results),
	}).Debug("match candidates computed")
	return results, nil
}
