package matching

import (
	"testing"
	"time"

	"reconciliation-engine/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func bankTx(amount string, date string, desc string) models.BankTransaction {
	return models.BankTransaction{
		ID:          uuid.New(),
		Amount:      decimal.RequireFromString(amount),
		Date:        day(date),
		Description: desc,
	}
}

func internalTx(amount string, date string, desc string) models.InternalTransaction {
	return models.InternalTransaction{
		ID:          uuid.New(),
		Amount:      decimal.RequireFromString(amount),
		Date:        day(date),
		Description: desc,
	}
}

func TestDescriptionSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "Acme Corp Payment", b: "Acme Corp Payment", want: 1},
		{name: "case and punctuation ignored", a: "ACME, Corp. Payment!", b: "acme corp payment", want: 1},
		{name: "partial overlap", a: "acme corp payment", b: "acme payment ref", want: 0.5},
		{name: "no overlap", a: "rent", b: "payroll", want: 0},
		{name: "empty left", a: "", b: "acme", want: 0},
		{name: "empty right", a: "acme", b: "   ", want: 0},
		{name: "duplicate words count once", a: "acme acme acme", b: "acme", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DescriptionSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, 1, 12, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 2, DaysBetween(a, b))
	assert.Equal(t, 2, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a.Add(-time.Hour)))
}

func TestDaysBetween_UsesUTCDates(t *testing.T) {
	ny := time.FixedZone("EST", -5*60*60)

	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			name: "same UTC day viewed from another zone",
			a:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC).In(ny),
			b:    time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC).In(ny),
			want: 0,
		},
		{
			name: "mixed offsets on the same UTC day",
			a:    time.Date(2024, 1, 10, 23, 30, 0, 0, ny),
			b:    time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "local dates equal but UTC dates differ",
			a:    time.Date(2024, 1, 10, 20, 0, 0, 0, ny),
			b:    time.Date(2024, 1, 10, 8, 0, 0, 0, ny),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
			assert.Equal(t, tt.want, DaysBetween(tt.b, tt.a))
		})
	}
}

func TestCompare_OffsetTimestampsStayHigh(t *testing.T) {
	ny := time.FixedZone("EST", -5*60*60)
	b := bankTx("100.00", "2024-01-10", "Acme Corp Payment")
	b.Date = time.Date(2024, 1, 10, 23, 30, 0, 0, ny)
	i := internalTx("100.00", "2024-01-11", "Acme Corp Payment")

	r, ok := Compare(b, i, DefaultCriteria())
	require.True(t, ok)
	assert.Equal(t, 0, r.DateDifference)
	assert.Equal(t, models.ConfidenceHigh, r.Confidence)
}

func TestCompare_Tolerances(t *testing.T) {
	criteria := DefaultCriteria()

	tests := []struct {
		name   string
		bank   models.BankTransaction
		intern models.InternalTransaction
		wantOK bool
	}{
		{
			name:   "amount difference equal to tolerance is kept",
			bank:   bankTx("100.00", "2024-01-10", "x"),
			intern: internalTx("100.01", "2024-01-10", "y"),
			wantOK: true,
		},
		{
			name:   "amount difference just above tolerance is dropped",
			bank:   bankTx("100.00", "2024-01-10", "x"),
			intern: internalTx("100.0101", "2024-01-10", "y"),
			wantOK: false,
		},
		{
			name:   "date difference equal to tolerance is kept",
			bank:   bankTx("50", "2024-01-10", "x"),
			intern: internalTx("50", "2024-01-13", "y"),
			wantOK: true,
		},
		{
			name:   "date difference above tolerance is dropped",
			bank:   bankTx("50", "2024-01-10", "x"),
			intern: internalTx("50", "2024-01-14", "y"),
			wantOK: false,
		},
		{
			name:   "large amount gap is never a candidate",
			bank:   bankTx("100.00", "2024-01-10", "Acme Corp Payment"),
			intern: internalTx("105.00", "2024-01-10", "Acme Corp Payment"),
			wantOK: false,
		},
		{
			name:   "negative amounts compare by absolute difference",
			bank:   bankTx("-42.50", "2024-01-10", "fee"),
			intern: internalTx("-42.50", "2024-01-10", "fee"),
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Compare(tt.bank, tt.intern, criteria)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestCompare_Confidence(t *testing.T) {
	criteria := DefaultCriteria()

	tests := []struct {
		name           string
		bank           models.BankTransaction
		intern         models.InternalTransaction
		wantConfidence models.Confidence
		wantType       models.MatchType
	}{
		{
			name:           "exact amount, date and description",
			bank:           bankTx("100.00", "2024-01-10", "Acme Corp Payment"),
			intern:         internalTx("100.00", "2024-01-10", "Acme Corp Payment"),
			wantConfidence: models.ConfidenceHigh,
			wantType:       models.MatchTypeExact,
		},
		{
			// 4 shared words out of 5 is exactly 0.8, which is not enough for high.
			name:           "similarity exactly 0.8 is not high",
			bank:           bankTx("100.00", "2024-01-10", "acme corp invoice payment jan"),
			intern:         internalTx("100.00", "2024-01-10", "acme corp invoice payment"),
			wantConfidence: models.ConfidenceMedium,
			wantType:       models.MatchTypeFuzzy,
		},
		{
			// 1 shared word out of 2 is exactly 0.5, which is not enough for medium.
			name:           "similarity exactly 0.5 is low",
			bank:           bankTx("100.00", "2024-01-10", "acme payment"),
			intern:         internalTx("100.00", "2024-01-11", "acme"),
			wantConfidence: models.ConfidenceLow,
			wantType:       models.MatchTypeFuzzy,
		},
		{
			name:           "half tolerance and one day with similar text is medium",
			bank:           bankTx("100.00", "2024-01-10", "Acme Corp Payment"),
			intern:         internalTx("100.005", "2024-01-11", "Acme Corp Payment"),
			wantConfidence: models.ConfidenceMedium,
			wantType:       models.MatchTypeFuzzy,
		},
		{
			name:           "two days apart falls to low even with identical text",
			bank:           bankTx("100.00", "2024-01-10", "Acme Corp Payment"),
			intern:         internalTx("100.005", "2024-01-12", "Acme Corp Payment"),
			wantConfidence: models.ConfidenceLow,
			wantType:       models.MatchTypeFuzzy,
		},
		{
			name:           "amount above half tolerance is low",
			bank:           bankTx("100.00", "2024-01-10", "Acme Corp Payment"),
			intern:         internalTx("100.006", "2024-01-10", "Acme Corp Payment"),
			wantConfidence: models.ConfidenceLow,
			wantType:       models.MatchTypeFuzzy,
		},
		{
			name:           "exact figures but unrelated text is low",
			bank:           bankTx("100.00", "2024-01-10", "rent"),
			intern:         internalTx("100.00", "2024-01-10", "payroll"),
			wantConfidence: models.ConfidenceLow,
			wantType:       models.MatchTypeFuzzy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := Compare(tt.bank, tt.intern, criteria)
			require.True(t, ok)
			assert.Equal(t, tt.wantConfidence, r.Confidence)
			assert.Equal(t, tt.wantType, r.MatchType)
		})
	}
}

func TestCompare_ReportsDifferences(t *testing.T) {
	r, ok := Compare(
		bankTx("100.00", "2024-01-10", "Acme Corp Payment"),
		internalTx("100.005", "2024-01-12", "Acme Corp"),
		DefaultCriteria(),
	)
	require.True(t, ok)

	assert.True(t, r.AmountDifference.Equal(decimal.RequireFromString("0.005")))
	assert.Equal(t, 2, r.DateDifference)
	assert.InDelta(t, 2.0/3.0, r.DescriptionSimilarity, 1e-9)
}

func TestFindMatches_OrderedByConfidenceAndStable(t *testing.T) {
	b1 := bankTx("10.00", "2024-02-01", "coffee shop")
	b2 := bankTx("20.00", "2024-02-01", "Acme Corp Payment")
	b3 := bankTx("10.00", "2024-02-02", "coffee")

	i1 := internalTx("10.00", "2024-02-03", "coffee shop")
	i2 := internalTx("20.00", "2024-02-01", "Acme Corp Payment")

	results := FindMatches(
		[]models.BankTransaction{b1, b2, b3},
		[]models.InternalTransaction{i1, i2},
		DefaultCriteria(),
	)

	require.Len(t, results, 3)
	assert.Equal(t, b2.ID, results[0].BankTransaction.ID)
	assert.Equal(t, models.ConfidenceHigh, results[0].Confidence)

	// both remaining results are low; encounter order (b1 before b3) is preserved
	assert.Equal(t, b1.ID, results[1].BankTransaction.ID)
	assert.Equal(t, models.ConfidenceLow, results[1].Confidence)
	assert.Equal(t, b3.ID, results[2].BankTransaction.ID)
	assert.Equal(t, models.ConfidenceLow, results[2].Confidence)
}

func TestFindMatches_ManyToMany(t *testing.T) {
	b := bankTx("10.00", "2024-02-01", "transfer")
	i1 := internalTx("10.00", "2024-02-01", "transfer")
	i2 := internalTx("10.00", "2024-02-02", "transfer")

	results := FindMatches([]models.BankTransaction{b}, []models.InternalTransaction{i1, i2}, DefaultCriteria())

	require.Len(t, results, 2)
	assert.Equal(t, models.ConfidenceHigh, results[0].Confidence)
	assert.Equal(t, models.ConfidenceMedium, results[1].Confidence)
}

func TestFindMatches_CustomCriteria(t *testing.T) {
	b := bankTx("100.00", "2024-03-01", "invoice 17")
	i := internalTx("104.00", "2024-03-09", "invoice 17")

	assert.Empty(t, FindMatches([]models.BankTransaction{b}, []models.InternalTransaction{i}, DefaultCriteria()))

	results := FindMatches([]models.BankTransaction{b}, []models.InternalTransaction{i}, Criteria{
		AmountTolerance:   decimal.NewFromInt(5),
		DateToleranceDays: 10,
	})
	require.Len(t, results, 1)
	assert.Equal(t, models.ConfidenceLow, results[0].Confidence)
}

func TestFindMatches_Empty(t *testing.T) {
	assert.Empty(t, FindMatches(nil, []models.InternalTransaction{internalTx("1", "2024-01-01", "a")}, DefaultCriteria()))
}
