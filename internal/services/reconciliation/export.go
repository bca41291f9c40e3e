package reconciliation

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet           = "Summary"
	unmatchedBankSheet     = "Unmatched Bank"
	unmatchedInternalSheet = "Unmatched Internal"
	matchesSheet           = "Matches"
)

// ExportReportXLSX writes the report as a workbook with one sheet for the
// summary and one per listing. Amounts are numeric cells at full precision.
func ExportReportXLSX(r *Report, w io.Writer) error {
	if r == nil {
		return errors.New("export: nil report")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	summaryRows := [][]interface{}{
		{"Session", r.Session.Name},
		{"Type", string(r.Session.Type)},
		{"Period start", r.Session.PeriodStart.Format(time.DateOnly)},
		{"Period end", r.Session.PeriodEnd.Format(time.DateOnly)},
		{"Status", string(r.Session.Status)},
		{"Bank transactions", r.Summary.TotalBankTransactions},
		{"Internal transactions", r.Summary.TotalInternalTransactions},
		{"Matched", r.Summary.MatchedTransactions},
		{"Unmatched", r.Summary.UnmatchedTransactions},
		{"Total bank amount", r.Summary.TotalBankAmount.InexactFloat64()},
		{"Total internal amount", r.Summary.TotalInternalAmount.InexactFloat64()},
		{"Difference", r.Summary.Difference.InexactFloat64()},
	}
	if err := writeRows(f, summarySheet, []string{"Field", "Value"}, summaryRows); err != nil {
		return err
	}

	bankRows := make([][]interface{}, 0, len(r.UnmatchedBank))
	for _, t := range r.UnmatchedBank {
		bankRows = append(bankRows, []interface{}{
			t.ExternalTransactionID, t.Date.Format(time.DateOnly), t.Amount.InexactFloat64(), t.Description, t.Reference,
		})
	}
	if err := addSheet(f, unmatchedBankSheet, []string{"External ID", "Date", "Amount", "Description", "Reference"}, bankRows); err != nil {
		return err
	}

	internalRows := make([][]interface{}, 0, len(r.UnmatchedInternal))
	for _, t := range r.UnmatchedInternal {
		internalRows = append(internalRows, []interface{}{
			t.EntityType, t.EntityID, t.Date.Format(time.DateOnly), t.Amount.InexactFloat64(), t.Description, t.Account,
		})
	}
	if err := addSheet(f, unmatchedInternalSheet, []string{"Entity type", "Entity ID", "Date", "Amount", "Description", "Account"}, internalRows); err != nil {
		return err
	}

	matchRows := make([][]interface{}, 0, len(r.Matches))
	for _, m := range r.Matches {
		matchRows = append(matchRows, []interface{}{
			m.BankTransactionID.String(), m.InternalTransactionID.String(), string(m.Confidence), string(m.MatchType), m.MatchedBy, m.MatchedAt.Format(time.RFC3339), m.Notes,
		})
	}
	if err := addSheet(f, matchesSheet, []string{"Bank transaction", "Internal transaction", "Confidence", "Type", "Matched by", "Matched at", "Notes"}, matchRows); err != nil {
		return err
	}

	return f.Write(w)
}

func addSheet(f *excelize.File, name string, headings []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeRows(f, name, headings, rows)
}

func writeRows(f *excelize.File, sheet string, headings []string, rows [][]interface{}) error {
	for i, h := range headings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
