package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fintrack/internal/domain"
)

func sampleTransactions() []domain.Transaction {
	date := time.Date(2024, 5, 4, 18, 30, 0, 0, time.UTC)
	return []domain.Transaction{
		{
			ID:              "tx-1",
			Amount:          decimal.RequireFromString("-19.99"),
			Category:        "food",
			Description:     "Pizza, large",
			TransactionType: domain.TransactionTypeExpense,
			Date:            date,
			CreatedAt:       date,
			Tags:            []string{"dinner", "friends"},
		},
		{
			ID:              "tx-2",
			Amount:          decimal.NewFromInt(1500),
			Category:        "salary",
			TransactionType: domain.TransactionTypeIncome,
			Date:            date.AddDate(0, 0, -3),
			CreatedAt:       date,
			Tags:            []string{},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatCSV, "csv": FormatCSV, " XLSX ": FormatXLSX} {
		got, ok := ParseFormat(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseFormat("pdf")
	assert.False(t, ok)
}

func TestFormat_Metadata(t *testing.T) {
	at := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "transactions_20240504.csv", FormatCSV.Filename(at))
	assert.Equal(t, "transactions_20240504.xlsx", FormatXLSX.Filename(at))
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleTransactions()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{
		"tx-1", "2024-05-04T18:30:00Z", "expense", "food", "Pizza, large", "-19.99", "dinner;friends", "2024-05-04T18:30:00Z",
	}, rows[1])
	assert.Equal(t, "", rows[2][6])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{Header}, rows)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleTransactions()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "tx-1", rows[1][0])
	assert.Equal(t, "Pizza, large", rows[1][4])
	assert.Equal(t, "-19.99", rows[1][5])
	assert.Equal(t, "1500", rows[2][5])
}

func formulaTransaction() domain.Transaction {
	date := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)
	return domain.Transaction{
		ID:              "tx-3",
		Amount:          decimal.RequireFromString("-5"),
		Category:        "@sum",
		Description:     "=HYPERLINK(\"http://x\")",
		TransactionType: domain.TransactionTypeExpense,
		Date:            date,
		CreatedAt:       date,
		Tags:            []string{"+cmd", "ok"},
	}
}

func TestWriteCSV_NeutralizesFormulas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []domain.Transaction{formulaTransaction()}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "'@sum", rows[1][3])
	assert.Equal(t, "'=HYPERLINK(\"http://x\")", rows[1][4])
	assert.Equal(t, "-5", rows[1][5], "amounts stay numeric")
	assert.Equal(t, "'+cmd;ok", rows[1][6])
}

func TestWriteXLSX_NeutralizesFormulas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, []domain.Transaction{formulaTransaction()}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	formula, err := f.GetCellFormula(sheetName, "E2")
	require.NoError(t, err)
	assert.Empty(t, formula)

	value, err := f.GetCellValue(sheetName, "E2")
	require.NoError(t, err)
	assert.Equal(t, "'=HYPERLINK(\"http://x\")", value)
}

func TestEscapeCell(t *testing.T) {
	for in, want := range map[string]string{
		"":         "",
		"food":     "food",
		"-1":       "'-1",
		"\tx":      "'\tx",
		"a=b":      "a=b",
		"@handle":  "'@handle",
		"+1 phone": "'+1 phone",
	} {
		assert.Equal(t, want, escapeCell(in), in)
	}
}
