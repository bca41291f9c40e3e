package reconciliation

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"reconciliation-engine/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*ReconciliationService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return NewReconciliationService(db, nil), db
}

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createJanuarySession(t *testing.T, s *ReconciliationService) *models.ReconciliationSession {
	t.Helper()
	session, err := s.CreateSession(context.Background(), "user-1", CreateSessionParams{
		Name:        "January",
		PeriodStart: date("2024-01-01"),
		PeriodEnd:   date("2024-01-31"),
	})
	require.NoError(t, err)
	return session
}

func TestCreateSession_Defaults(t *testing.T) {
	s, _ := newTestService(t)

	session := createJanuarySession(t, s)

	assert.Equal(t, models.SessionStatusActive, session.Status)
	assert.Equal(t, models.SessionTypeBankToBook, session.Type)
	assert.True(t, session.AmountTolerance.Equal(dec("0.01")))
	assert.Equal(t, 3, session.DateTolerance)
	assert.Zero(t, session.TotalTransactions)
	assert.Nil(t, session.CompletedAt)

	stored, err := s.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Name, stored.Name)
	assert.True(t, stored.AmountTolerance.Equal(dec("0.01")))
}

func TestCreateSession_ExplicitZeroDateTolerance(t *testing.T) {
	s, _ := newTestService(t)
	zero := 0
	tol := dec("1.5")

	session, err := s.CreateSession(context.Background(), "user-1", CreateSessionParams{
		Name:            "strict",
		Type:            models.SessionTypeVendorReconciliation,
		PeriodStart:     date("2024-01-01"),
		PeriodEnd:       date("2024-01-01"),
		AmountTolerance: &tol,
		DateTolerance:   &zero,
	})
	require.NoError(t, err)

	stored, err := s.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.DateTolerance)
	assert.True(t, stored.AmountTolerance.Equal(tol))
	assert.Equal(t, models.SessionTypeVendorReconciliation, stored.Type)
}

func TestCreateSession_Validation(t *testing.T) {
	negative := -1

	tests := []struct {
		name   string
		owner  string
		params CreateSessionParams
	}{
		{
			name:  "period start after end",
			owner: "user-1",
			params: CreateSessionParams{
				Name: "bad", PeriodStart: date("2024-02-01"), PeriodEnd: date("2024-01-01"),
			},
		},
		{
			name:   "missing name",
			owner:  "user-1",
			params: CreateSessionParams{PeriodStart: date("2024-01-01"), PeriodEnd: date("2024-01-31")},
		},
		{
			name:   "missing owner",
			params: CreateSessionParams{Name: "x", PeriodStart: date("2024-01-01"), PeriodEnd: date("2024-01-31")},
		},
		{
			name:  "unknown type",
			owner: "user-1",
			params: CreateSessionParams{
				Name: "x", Type: "cash_count", PeriodStart: date("2024-01-01"), PeriodEnd: date("2024-01-31"),
			},
		},
		{
			name:  "negative date tolerance",
			owner: "user-1",
			params: CreateSessionParams{
				Name: "x", PeriodStart: date("2024-01-01"), PeriodEnd: date("2024-01-31"), DateTolerance: &negative,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, db := newTestService(t)

			_, err := s.CreateSession(context.Background(), tt.owner, tt.params)
			assert.ErrorIs(t, err, ErrValidation)

			var count int64
			require.NoError(t, db.Model(&models.ReconciliationSession{}).Count(&count).Error)
			assert.Zero(t, count)
		})
	}
}

func TestGetSession_NotFound(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.GetSession(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAndCancelSessions(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	first := createJanuarySession(t, s)
	_, err := s.CreateSession(ctx, "user-2", CreateSessionParams{
		Name: "other", PeriodStart: date("2024-01-01"), PeriodEnd: date("2024-01-31"),
	})
	require.NoError(t, err)

	sessions, err := s.ListSessions(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, first.ID, sessions[0].ID)

	cancelled, err := s.CancelSession(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusCancelled, cancelled.Status)

	// recomputing never reopens a cancelled session
	recomputed, err := s.RecomputeCounts(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusCancelled, recomputed.Status)
}

func TestImportBankTransactions_Dedup(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()
	session := createJanuarySession(t, s)

	records := []BankTransactionInput{
		{ExternalTransactionID: "b1", Date: date("2024-01-10"), Amount: dec("100.00"), Description: "Acme"},
		{ExternalTransactionID: "b2", Date: date("2024-01-11"), Amount: dec("-20.00"), Description: "Fee", IsPending: true},
		{ExternalTransactionID: "b1", Date: date("2024-01-10"), Amount: dec("100.00"), Description: "Acme again"},
	}

	res, err := s.ImportBankTransactions(ctx, session.ID, records)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 2, res.Session.TotalTransactions)
	assert.Equal(t, 2, res.Session.UnmatchedTransactions)

	// same feed re-imported into the same session
	res, err = s.ImportBankTransactions(ctx, session.ID, records[:2])
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 2, res.Skipped)

	// and into a different session: dedup is global
	other := createJanuarySession(t, s)
	res, err = s.ImportBankTransactions(ctx, other.ID, records[:1])
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)

	var count int64
	require.NoError(t, db.Model(&models.BankTransaction{}).Where("external_transaction_id = ?", "b1").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var pending models.BankTransaction
	require.NoError(t, db.First(&pending, "external_transaction_id = ?", "b2").Error)
	assert.True(t, pending.IsPending)
	assert.False(t, pending.IsReconciled)
	assert.True(t, pending.Amount.Equal(dec("-20")))
}

func TestImportBankTransactions_Errors(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.ImportBankTransactions(ctx, uuid.New(), []BankTransactionInput{
		{ExternalTransactionID: "x", Date: date("2024-01-10"), Amount: dec("1")},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	session := createJanuarySession(t, s)
	_, err = s.ImportBankTransactions(ctx, session.ID, []BankTransactionInput{
		{Date: date("2024-01-10"), Amount: dec("1")},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.ImportBankTransactions(ctx, session.ID, []BankTransactionInput{
		{ExternalTransactionID: "no-date", Amount: dec("1")},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestImportInternalTransactions_NoDedup(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	session := createJanuarySession(t, s)

	rec := InternalTransactionInput{EntityType: "invoice", EntityID: "inv-1", Date: date("2024-01-10"), Amount: dec("100")}

	res, err := s.ImportInternalTransactions(ctx, session.ID, []InternalTransactionInput{rec, rec})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)

	res, err = s.ImportInternalTransactions(ctx, session.ID, []InternalTransactionInput{rec})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 3, res.Session.TotalTransactions)
}

func importScenario(t *testing.T, s *ReconciliationService, sessionID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	_, err := s.ImportBankTransactions(ctx, sessionID, []BankTransactionInput{
		{ExternalTransactionID: "b1", Date: date("2024-01-10"), Amount: dec("100.00"), Description: "Acme Corp Payment"},
	})
	require.NoError(t, err)
	_, err = s.ImportInternalTransactions(ctx, sessionID, []InternalTransactionInput{
		{EntityType: "payment", EntityID: "i1", Date: date("2024-01-10"), Amount: dec("100.00"), Description: "Acme Corp Payment"},
	})
	require.NoError(t, err)
}

func TestEndToEnd_ExactMatchCompletesSession(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()
	session := createJanuarySession(t, s)
	importScenario(t, s, session.ID)

	results, err := s.FindMatches(ctx, session.ID, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, models.ConfidenceHigh, r.Confidence)
	assert.Equal(t, models.MatchTypeExact, r.MatchType)
	assert.True(t, r.AmountDifference.IsZero())
	assert.Equal(t, 0, r.DateDifference)

	match, err := s.CreateMatch(ctx, session.ID, r.BankTransaction.ID, r.InternalTransaction.ID, "user-1", "looks right")
	require.NoError(t, err)
	assert.Equal(t, models.ConfidenceManual, match.Confidence)
	assert.Equal(t, models.MatchTypeManual, match.MatchType)
	assert.Equal(t, models.MatchStatusMatched, match.Status)
	assert.Equal(t, "looks right", match.Notes)

	var bank models.BankTransaction
	require.NoError(t, db.First(&bank, "id = ?", r.BankTransaction.ID).Error)
	assert.True(t, bank.IsReconciled)
	var internal models.InternalTransaction
	require.NoError(t, db.First(&internal, "id = ?", r.InternalTransaction.ID).Error)
	assert.True(t, internal.IsReconciled)

	var matchCount int64
	require.NoError(t, db.Model(&models.ReconciliationMatch{}).Count(&matchCount).Error)
	assert.Equal(t, int64(1), matchCount)

	var audit []models.MatchAuditLog
	require.NoError(t, db.Find(&audit).Error)
	require.Len(t, audit, 1)
	assert.Equal(t, models.AuditActionManualMatch, audit[0].Action)
	assert.Equal(t, match.ID, audit[0].MatchID)

	updated, err := s.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
	assert.Equal(t, 2, updated.TotalTransactions)
	assert.Equal(t, 2, updated.MatchedTransactions)
	assert.Equal(t, 0, updated.UnmatchedTransactions)

	// reconciled rows are no longer proposed
	results, err = s.FindMatches(ctx, session.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCreateMatch_AlreadyReconciled(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()
	session := createJanuarySession(t, s)
	importScenario(t, s, session.ID)

	_, err := s.ImportInternalTransactions(ctx, session.ID, []InternalTransactionInput{
		{EntityType: "payment", EntityID: "i2", Date: date("2024-01-10"), Amount: dec("100.00"), Description: "Acme Corp Payment"},
	})
	require.NoError(t, err)

	results, err := s.FindMatches(ctx, session.ID, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	_, err = s.CreateMatch(ctx, session.ID, results[0].BankTransaction.ID, results[0].InternalTransaction.ID, "user-1", "")
	require.NoError(t, err)

	// same bank line against the other internal line
	_, err = s.CreateMatch(ctx, session.ID, results[1].BankTransaction.ID, results[1].InternalTransaction.ID, "user-2", "")
	assert.ErrorIs(t, err, ErrAlreadyReconciled)

	var matchCount int64
	require.NoError(t, db.Model(&models.ReconciliationMatch{}).Count(&matchCount).Error)
	assert.Equal(t, int64(1), matchCount)

	// the failed attempt must not leave the second internal line flagged
	var internal models.InternalTransaction
	require.NoError(t, db.First(&internal, "id = ?", results[1].InternalTransaction.ID).Error)
	assert.False(t, internal.IsReconciled)

	updated, err := s.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusActive, updated.Status)
	assert.Equal(t, 3, updated.TotalTransactions)
	assert.Equal(t, 2, updated.MatchedTransactions)
	assert.Equal(t, 1, updated.UnmatchedTransactions)
	assert.Nil(t, updated.CompletedAt)
}

func TestCreateMatch_NotFound(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	session := createJanuarySession(t, s)
	importScenario(t, s, session.ID)

	results, err := s.FindMatches(ctx, session.ID, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	bankID := results[0].BankTransaction.ID
	internalID := results[0].InternalTransaction.ID

	_, err = s.CreateMatch(ctx, uuid.New(), bankID, internalID, "u", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateMatch(ctx, session.ID, uuid.New(), internalID, "u", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateMatch(ctx, session.ID, bankID, uuid.New(), "u", "")
	assert.ErrorIs(t, err, ErrNotFound)

	// transactions belonging to another session are not visible
	other := createJanuarySession(t, s)
	_, err = s.CreateMatch(ctx, other.ID, bankID, internalID, "u", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmPair_UnencodableDetailsRollsBack(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()
	session := createJanuarySession(t, s)
	importScenario(t, s, session.ID)

	results, err := s.FindMatches(ctx, session.ID, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := s.confirmPair(ctx, tx, session.ID, pairing{
			bankID:     results[0].BankTransaction.ID,
			internalID: results[0].InternalTransaction.ID,
			confidence: models.ConfidenceHigh,
			matchType:  models.MatchTypeExact,
			action:     models.AuditActionAutoMatch,
			details:    map[string]interface{}{"description_similarity": math.NaN()},
		}, "system", "")
		return err
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode audit details")

	var matches, audits int64
	require.NoError(t, db.Model(&models.ReconciliationMatch{}).Count(&matches).Error)
	require.NoError(t, db.Model(&models.MatchAuditLog{}).Count(&audits).Error)
	assert.Zero(t, matches)
	assert.Zero(t, audits)

	var bank models.BankTransaction
	require.NoError(t, db.First(&bank, "id = ?", results[0].BankTransaction.ID).Error)
	assert.False(t, bank.IsReconciled)
}

func TestCreateMatch_CancelledSession(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	session := createJanuarySession(t, s)
	importScenario(t, s, session.ID)

	results, err := s.FindMatches(ctx, session.ID, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	_, err = s.CancelSession(ctx, session.ID)
	require.NoError(t, err)

	_, err = s.CreateMatch(ctx, session.ID, results[0].BankTransaction.ID, results[0].InternalTransaction.ID, "u", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSessionCompletesOnlyWhenEverythingMatched(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	session := createJanuarySession(t, s)

	_, err := s.ImportBankTransactions(ctx, session.ID, []BankTransactionInput{
		{ExternalTransactionID: "b1", Date: date("2024-01-05"), Amount: dec("10"), Description: "one"},
		{ExternalTransactionID: "b2", Date: date("2024-01-06"), Amount: dec("20"), Description: "two"},
	})
	require.NoError(t, err)
	_, err = s.ImportInternalTransactions(ctx, session.ID, []InternalTransactionInput{
		{Date: date("2024-01-05"), Amount: dec("10"), Description: "one"},
		{Date: date("2024-01-06"), Amount: dec("20"), Description: "two"},
	})
	require.NoError(t, err)

	results, err := s.FindMatches(ctx, session.ID, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	_, err = s.CreateMatch(ctx, session.ID, results[0].BankTransaction.ID, results[0].InternalTransaction.ID, "u", "")
	require.NoError(t, err)
	mid, err := s.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusActive, mid.Status)
	assert.Nil(t, mid.CompletedAt)

	_, err = s.CreateMatch(ctx, session.ID, results[1].BankTransaction.ID, results[1].InternalTransaction.ID, "u", "")
	require.NoError(t, err)
	done, err := s.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)

	// a late import reopens the session
	_, err = s.ImportBankTransactions(ctx, session.ID, []BankTransactionInput{
		{ExternalTransactionID: "b3", Date: date("2024-01-07"), Amount: dec("30")},
	})
	require.NoError(t, err)
	reopened, err := s.RecomputeCounts(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusActive, reopened.Status)
	assert.Nil(t, reopened.CompletedAt)
	assert.Equal(t, 5, reopened.TotalTransactions)
	assert.Equal(t, 4, reopened.MatchedTransactions)
}

func TestRecomputeCounts_EmptySessionStaysActive(t *testing.T) {
	s, _ := newTestService(t)
	session := createJanuarySession(t, s)

	got, err := s.RecomputeCounts(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusActive, got.Status)
	assert.Zero(t, got.TotalTransactions)
}

func TestFindMatches_CriteriaOverride(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	session := createJanuarySession(t, s)

	_, err := s.ImportBankTransactions(ctx, session.ID, []BankTransactionInput{
		{ExternalTransactionID: "b1", Date: date("2024-01-10"), Amount: dec("100.00"), Description: "Acme"},
	})
	require.NoError(t, err)
	_, err = s.ImportInternalTransactions(ctx, session.ID, []InternalTransactionInput{
		{Date: date("2024-01-10"), Amount: dec("105.00"), Description: "Acme"},
	})
	require.NoError(t, err)

	results, err := s.FindMatches(ctx, session.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, results)

	wide := dec("5")
	results, err = s.FindMatches(ctx, session.ID, &MatchCriteria{AmountTolerance: &wide})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].AmountDifference.Equal(dec("5")))

	_, err = s.FindMatches(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAutoMatch(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()
	session := createJanuarySession(t, s)

	_, err := s.ImportBankTransactions(ctx, session.ID, []BankTransactionInput{
		{ExternalTransactionID: "b1", Date: date("2024-01-10"), Amount: dec("100.00"), Description: "Acme Corp Payment"},
		{ExternalTransactionID: "b2", Date: date("2024-01-15"), Amount: dec("55.00"), Description: "Office supplies"},
	})
	require.NoError(t, err)
	_, err = s.ImportInternalTransactions(ctx, session.ID, []InternalTransactionInput{
		{Date: date("2024-01-10"), Amount: dec("100.00"), Description: "Acme Corp Payment"},
		{Date: date("2024-01-11"), Amount: dec("100.00"), Description: "Acme Corp Payment"},
		{Date: date("2024-01-17"), Amount: dec("55.00"), Description: "Stationery"},
	})
	require.NoError(t, err)

	created, err := s.AutoMatch(ctx, session.ID, "system", models.ConfidenceHigh)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, models.ConfidenceHigh, created[0].Confidence)
	assert.Equal(t, models.MatchTypeExact, created[0].MatchType)

	// b1 is taken, so the medium candidate for the second Acme line is not used
	created, err = s.AutoMatch(ctx, session.ID, "system", models.ConfidenceMedium)
	require.NoError(t, err)
	assert.Empty(t, created)

	created, err = s.AutoMatch(ctx, session.ID, "system", models.ConfidenceLow)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, models.ConfidenceLow, created[0].Confidence)

	var audit []models.MatchAuditLog
	require.NoError(t, db.Where("action = ?", models.AuditActionAutoMatch).Find(&audit).Error)
	assert.Len(t, audit, 2)

	updated, err := s.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.MatchedTransactions)
	assert.Equal(t, 1, updated.UnmatchedTransactions)

	_, err = s.AutoMatch(ctx, session.ID, "system", models.ConfidenceManual)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGenerateReport(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	session := createJanuarySession(t, s)

	_, err := s.ImportBankTransactions(ctx, session.ID, []BankTransactionInput{
		{ExternalTransactionID: "b1", Date: date("2024-01-10"), Amount: dec("100.00"), Description: "Acme Corp Payment"},
		{ExternalTransactionID: "b2", Date: date("2024-01-12"), Amount: dec("-25.50"), Description: "Bank fee"},
	})
	require.NoError(t, err)
	_, err = s.ImportInternalTransactions(ctx, session.ID, []InternalTransactionInput{
		{Date: date("2024-01-10"), Amount: dec("100.00"), Description: "Acme Corp Payment"},
		{Date: date("2024-01-20"), Amount: dec("40.25"), Description: "Deposit"},
	})
	require.NoError(t, err)

	results, err := s.FindMatches(ctx, session.ID, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	_, err = s.CreateMatch(ctx, session.ID, results[0].BankTransaction.ID, results[0].InternalTransaction.ID, "u", "")
	require.NoError(t, err)

	report, err := s.GenerateReport(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.TotalBankTransactions)
	assert.Equal(t, 2, report.Summary.TotalInternalTransactions)
	assert.Equal(t, 1, report.Summary.MatchedTransactions)
	assert.Equal(t, 3, report.Summary.UnmatchedTransactions)
	// totals include the reconciled rows
	assert.True(t, report.Summary.TotalBankAmount.Equal(dec("74.50")), report.Summary.TotalBankAmount.String())
	assert.True(t, report.Summary.TotalInternalAmount.Equal(dec("140.25")), report.Summary.TotalInternalAmount.String())
	assert.True(t, report.Summary.Difference.Equal(dec("65.75")), report.Summary.Difference.String())

	require.Len(t, report.Matches, 1)
	require.Len(t, report.UnmatchedBank, 1)
	assert.Equal(t, "b2", report.UnmatchedBank[0].ExternalTransactionID)
	require.Len(t, report.UnmatchedInternal, 1)
	assert.Equal(t, "Deposit", report.UnmatchedInternal[0].Description)

	require.Len(t, report.AuditLog, 1)
	assert.Equal(t, report.Matches[0].ID, report.AuditLog[0].MatchID)
	assert.Equal(t, models.AuditActionManualMatch, report.AuditLog[0].Action)
	assert.Equal(t, "u", report.AuditLog[0].PerformedBy)
	assert.Contains(t, string(report.AuditLog[0].Details), `"confidence":"manual"`)

	_, err = s.GenerateReport(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
