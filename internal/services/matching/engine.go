package matching

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"reconciliation-engine/internal/models"

	"github.com/shopspring/decimal"
)

const (
	exactSimilarityThreshold  = 0.8
	mediumSimilarityThreshold = 0.5
	mediumDateToleranceDays   = 1
)

var two = decimal.NewFromInt(2)

// Criteria bounds which pairs may be proposed at all.
type Criteria struct {
	AmountTolerance   decimal.Decimal
	DateToleranceDays int
}

func DefaultCriteria() Criteria {
	return Criteria{
		AmountTolerance:   models.DefaultAmountTolerance,
		DateToleranceDays: models.DefaultDateToleranceDays,
	}
}

// MatchResult is a candidate pairing. It is never persisted as-is.
type MatchResult struct {
	BankTransaction       models.BankTransaction     `json:"bank_transaction"`
	InternalTransaction   models.InternalTransaction `json:"internal_transaction"`
	Confidence            models.Confidence          `json:"confidence"`
	MatchType             models.MatchType           `json:"match_type"`
	AmountDifference      decimal.Decimal            `json:"amount_difference"`
	DateDifference        int                        `json:"date_difference"`
	DescriptionSimilarity float64                    `json:"description_similarity"`
}

// FindMatches compares every bank line with every internal line and returns
// the surviving pairs ordered high, medium, low. Pairs of equal confidence
// keep the order in which they were compared (bank-major).
//
// A transaction can appear in several results; picking at most one pairing
// per transaction is left to the caller.
func FindMatches(bank []models.BankTransaction, internal []models.InternalTransaction, c Criteria) []MatchResult {
	var results []MatchResult

	for _, b := range bank {
		for _, i := range internal {
			if r, ok := Compare(b, i, c); ok {
				results = append(results, r)
			}
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Confidence.Rank() > results[b].Confidence.Rank()
	})
	return results
}

// Compare scores a single pair. ok is false when the pair falls outside the
// amount or date tolerance.
func Compare(b models.BankTransaction, i models.InternalTransaction, c Criteria) (MatchResult, bool) {
	amountDiff := b.Amount.Sub(i.Amount).Abs()
	if amountDiff.GreaterThan(c.AmountTolerance) {
		return MatchResult{}, false
	}

	days := DaysBetween(b.Date, i.Date)
	if days > c.DateToleranceDays {
		return MatchResult{}, false
	}

	sim := DescriptionSimilarity(b.Description, i.Description)
	confidence, matchType := classify(amountDiff, days, sim, c.AmountTolerance)

	return MatchResult{
		BankTransaction:       b,
		InternalTransaction:   i,
		Confidence:            confidence,
		MatchType:             matchType,
		AmountDifference:      amountDiff,
		DateDifference:        days,
		DescriptionSimilarity: sim,
	}, true
}

func classify(amountDiff decimal.Decimal, days int, sim float64, tolerance decimal.Decimal) (models.Confidence, models.MatchType) {
	switch {
	case amountDiff.IsZero() && days == 0 && sim > exactSimilarityThreshold:
		return models.ConfidenceHigh, models.MatchTypeExact
	case amountDiff.LessThanOrEqual(tolerance.Div(two)) && days <= mediumDateToleranceDays && sim > mediumSimilarityThreshold:
		return models.ConfidenceMedium, models.MatchTypeFuzzy
	default:
		return models.ConfidenceLow, models.MatchTypeFuzzy
	}
}

// DaysBetween is the absolute number of calendar days between the UTC dates
// of a and b. Time of day is ignored.
func DaysBetween(a, b time.Time) int {
	a, b = a.UTC(), b.UTC()
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(da.Sub(db).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}

// DescriptionSimilarity is the Jaccard index of the two descriptions' word
// sets. Empty descriptions score 0.
func DescriptionSimilarity(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	intersection := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			intersection++
		}
	}
	union := len(wa) + len(wb) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(normalizeDescription(s)) {
		set[w] = struct{}{}
	}
	return set
}

func normalizeDescription(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
}
