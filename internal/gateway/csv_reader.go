package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"reconciliation-engine/internal/services/reconciliation"

	"github.com/shopspring/decimal"
)

// accepted date layouts, tried in order
var dateLayouts = []string{time.DateOnly, "02-01-2006", time.RFC3339}

// CSVTransactionReader parses bank statement and ledger exports. Columns are
// located by header name, so their order does not matter and unknown columns
// are ignored.
type CSVTransactionReader struct{}

func NewCSVTransactionReader() *CSVTransactionReader {
	return &CSVTransactionReader{}
}

// ReadBankTransactions expects at least external_transaction_id (or id),
// date and amount columns.
func (r *CSVTransactionReader) ReadBankTransactions(ctx context.Context, src io.Reader) ([]reconciliation.BankTransactionInput, error) {
	var out []reconciliation.BankTransactionInput
	err := readRows(ctx, src, []string{"date", "amount"}, func(row rowReader) error {
		id := row.get("external_transaction_id", "id", "transaction_id")
		if id == "" {
			return errors.New("missing external transaction id")
		}
		date, amount, err := row.dateAndAmount()
		if err != nil {
			return err
		}
		pending, err := row.bool("is_pending", "pending")
		if err != nil {
			return err
		}

		out = append(out, reconciliation.BankTransactionInput{
			ExternalTransactionID: id,
			Date:                  date,
			Amount:                amount,
			Description:           row.get("description"),
			Reference:             row.get("reference"),
			Memo:                  row.get("memo"),
			Category:              row.get("category"),
			Merchant:              row.get("merchant"),
			IsPending:             pending,
		})
		return nil
	})
	return out, err
}

// ReadInternalTransactions expects at least date and amount columns.
func (r *CSVTransactionReader) ReadInternalTransactions(ctx context.Context, src io.Reader) ([]reconciliation.InternalTransactionInput, error) {
	var out []reconciliation.InternalTransactionInput
	err := readRows(ctx, src, []string{"date", "amount"}, func(row rowReader) error {
		date, amount, err := row.dateAndAmount()
		if err != nil {
			return err
		}
		out = append(out, reconciliation.InternalTransactionInput{
			EntityType:  row.get("entity_type"),
			EntityID:    row.get("entity_id"),
			Date:        date,
			Amount:      amount,
			Description: row.get("description"),
			Account:     row.get("account"),
		})
		return nil
	})
	return out, err
}

// ReadBankFile and ReadInternalFile are the path based variants used by the CLI.
func (r *CSVTransactionReader) ReadBankFile(ctx context.Context, path string) ([]reconciliation.BankTransactionInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bank statement file %s: %w", path, err)
	}
	defer file.Close()
	return r.ReadBankTransactions(ctx, file)
}

func (r *CSVTransactionReader) ReadInternalFile(ctx context.Context, path string) ([]reconciliation.InternalTransactionInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file %s: %w", path, err)
	}
	defer file.Close()
	return r.ReadInternalTransactions(ctx, file)
}

type rowReader struct {
	index  map[string]int
	record []string
}

func (row rowReader) get(names ...string) string {
	for _, n := range names {
		if i, ok := row.index[n]; ok && i < len(row.record) {
			return strings.TrimSpace(row.record[i])
		}
	}
	return ""
}

func (row rowReader) dateAndAmount() (time.Time, decimal.Decimal, error) {
	rawDate := row.get("date")
	date, err := ParseDate(rawDate)
	if err != nil {
		return time.Time{}, decimal.Decimal{}, err
	}
	rawAmount := row.get("amount")
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return time.Time{}, decimal.Decimal{}, fmt.Errorf("could not parse amount '%s': %w", rawAmount, err)
	}
	return date, amount, nil
}

func (row rowReader) bool(names ...string) (bool, error) {
	raw := row.get(names...)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return false, fmt.Errorf("could not parse boolean '%s': %w", raw, err)
	}
	return v, nil
}

// ParseDate accepts YYYY-MM-DD, DD-MM-YYYY and RFC 3339.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse date '%s'", raw)
}

func readRows(ctx context.Context, src io.Reader, required []string, fn func(rowReader) error) error {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		index[key] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("missing required column %q", col)
		}
	}

	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := reader.Read()
		line++
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading line %d: %w", line, err)
		}
		if strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}

		if err := fn(rowReader{index: index, record: record}); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}
