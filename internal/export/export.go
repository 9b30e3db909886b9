// Package export renders transaction lists as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"fintrack/internal/domain"
)

// Format is a supported export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat returns the format named by s. An empty s selects CSV.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, true
	case FormatXLSX:
		return FormatXLSX, true
	default:
		return "", false
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename returns the attachment name for an export taken at t.
func (f Format) Filename(t time.Time) string {
	return fmt.Sprintf("transactions_%s.%s", t.Format("20060102"), f)
}

// Header lists the exported columns.
var Header = []string{"id", "date", "transaction_type", "category", "description", "amount", "tags", "created_at"}

// escapeCell stops spreadsheet applications from evaluating free text as a formula.
func escapeCell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

func record(t domain.Transaction) []string {
	return []string{
		t.ID,
		t.Date.UTC().Format(time.RFC3339),
		string(t.TransactionType),
		escapeCell(t.Category),
		escapeCell(t.Description),
		t.Amount.String(),
		escapeCell(strings.Join(t.Tags, ";")),
		t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Write renders transactions to w in format f.
func Write(w io.Writer, f Format, transactions []domain.Transaction) error {
	if f == FormatXLSX {
		return WriteXLSX(w, transactions)
	}
	return WriteCSV(w, transactions)
}

// WriteCSV writes a header row followed by one row per transaction, in input order.
func WriteCSV(w io.Writer, transactions []domain.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range transactions {
		if err := cw.Write(record(t)); err != nil {
			return fmt.Errorf("write csv row %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

const sheetName = "Transactions"

// WriteXLSX writes a single-sheet workbook. Amounts are written as numbers.
func WriteXLSX(w io.Writer, transactions []domain.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename xlsx sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, t := range transactions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		fields := record(t)
		row := make([]interface{}, len(fields))
		for j, v := range fields {
			row[j] = v
		}
		row[5] = t.Amount.InexactFloat64()
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write xlsx row %s: %w", t.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
