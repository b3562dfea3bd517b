package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
)

func row(values ...string) []domain.Cell {
	cells := make([]domain.Cell, 0, len(values))
	for _, v := range values {
		cells = append(cells, domain.TextCell(v))
	}
	return cells
}

func assertRecordsEqual(t *testing.T, expected, actual []domain.SalesRecord) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.Equal(t, expected[i].Ordinal, actual[i].Ordinal, "ordinal[%d]", i)
		assert.Equal(t, expected[i].Responsible, actual[i].Responsible, "responsible[%d]", i)
		assert.Equal(t, expected[i].Client, actual[i].Client, "client[%d]", i)
		assert.Equal(t, expected[i].TableNumber, actual[i].TableNumber, "table_number[%d]", i)
		assert.True(t, expected[i].Amount.Equal(actual[i].Amount), "amount[%d]: %s != %s", i, expected[i].Amount, actual[i].Amount)
		assert.Equal(t, expected[i].AmountReported, actual[i].AmountReported, "amount_reported[%d]", i)
		assert.Equal(t, expected[i].ReceiptDate, actual[i].ReceiptDate, "receipt_date[%d]", i)
		assert.Equal(t, expected[i].Classification, actual[i].Classification, "classification[%d]", i)
	}
}

func TestNormalize(t *testing.T) {
	table := &domain.RawTable{
		Headers: []string{" ORD ", "NOME", "Cliente ", "", "MESA", "VALOR", "DATA_REC", "OBS"},
		Rows: [][]domain.Cell{
			row("1", "Ana", "Carlos", "", "10", "600", "01/10/2025", ""),
			row("", "", "", "", "", "", "", ""),
			row("2", "", "", "", "abc", "", "", ""),
			row("3", "Bruno", "Duda", "", "12", "R$ 1.200,50", "02/10/2025", "pago"),
			row("", "Sem ordem", "X", "", "13", "600", "", ""),
			row("4.0", "Ana", "Eva", "", "-1", "xyz", "", ""),
			row("5", "Bruno", "Fabi", "", "15", "300,00", "-", ""),
		},
	}

	records, err := Normalize(table, domain.DefaultColumnSet())
	require.NoError(t, err)

	expected := []domain.SalesRecord{
		{
			Ordinal: 1, Responsible: "Ana", Client: "Carlos", TableNumber: domain.Some(int64(10)),
			Amount: decimal.NewFromInt(600), AmountReported: true, ReceiptDate: "01/10/2025",
			Classification: domain.ClassificationTablePaid,
		},
		{
			Ordinal: 2, Responsible: "-", Client: "-", TableNumber: domain.None[int64](),
			Amount: decimal.Zero, AmountReported: false, ReceiptDate: "-",
			Classification: domain.ClassificationPending,
		},
		{
			Ordinal: 3, Responsible: "Bruno", Client: "Duda", TableNumber: domain.Some(int64(12)),
			Amount: decimal.RequireFromString("1200.50"), AmountReported: true, ReceiptDate: "02/10/2025",
			Classification: domain.ClassificationSponsorship,
		},
		{
			Ordinal: 4, Responsible: "Ana", Client: "Eva", TableNumber: domain.Some(int64(-1)),
			Amount: decimal.Zero, AmountReported: false, ReceiptDate: "-",
			Classification: domain.ClassificationPending,
		},
		{
			Ordinal: 5, Responsible: "Bruno", Client: "Fabi", TableNumber: domain.Some(int64(15)),
			Amount: decimal.NewFromInt(300), AmountReported: true, ReceiptDate: "-",
			Classification: domain.ClassificationHalfEntry,
		},
	}

	assertRecordsEqual(t, expected, records)
}

func TestNormalize_LegitimateMinusOneIsNotMissing(t *testing.T) {
	table := &domain.RawTable{
		Headers: domain.DefaultColumnSet().Names(),
		Rows: [][]domain.Cell{
			row("1", "Ana", "C", "-1", "600", "x"),
			row("2", "Ana", "C", "", "600", "x"),
		},
	}

	records, err := Normalize(table, domain.DefaultColumnSet())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.True(t, records[0].TableNumber.Valid)
	assert.Equal(t, int64(-1), records[0].TableNumber.Value)
	assert.False(t, records[1].TableNumber.Valid)
	assert.Equal(t, domain.MissingTableNumber, records[1].TableNumber.OrElse(domain.MissingTableNumber))
}

func TestNormalize_MissingOrdinalIsAlwaysDropped(t *testing.T) {
	table := &domain.RawTable{
		Headers: domain.DefaultColumnSet().Names(),
		Rows: [][]domain.Cell{
			row("", "Ana", "C", "1", "5000", "01/01/2025"),
			row("sem número", "Ana", "C", "1", "600", "01/01/2025"),
			row("7", "Ana", "C", "1", "600", "01/01/2025"),
		},
	}

	records, err := Normalize(table, domain.DefaultColumnSet())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(7), records[0].Ordinal)
}

func TestNormalize_OutOfRangeIntegersAreMissing(t *testing.T) {
	table := &domain.RawTable{
		Headers: domain.DefaultColumnSet().Names(),
		Rows: [][]domain.Cell{
			row("1e20", "Ana", "C", "1", "600", "01/01/2025"),
			row("-1e20", "Ana", "C", "1", "600", "01/01/2025"),
			row("9223372036854775808", "Ana", "C", "1", "600", "01/01/2025"),
			row("2", "Bruno", "D", "1e20", "600", "01/01/2025"),
			row("9223372036854775807", "Carla", "E", "3", "600", "01/01/2025"),
		},
	}

	records, err := Normalize(table, domain.DefaultColumnSet())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int64(2), records[0].Ordinal)
	assert.False(t, records[0].TableNumber.Valid)
	assert.Equal(t, int64(math.MaxInt64), records[1].Ordinal)
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Nullable[int64]
	}{
		{input: "42", want: domain.Some(int64(42))},
		{input: "4.9", want: domain.Some(int64(4))},
		{input: "-4.9", want: domain.Some(int64(-4))},
		{input: "1e3", want: domain.Some(int64(1000))},
		{input: "9223372036854775807", want: domain.Some(int64(math.MaxInt64))},
		{input: "-9223372036854775808", want: domain.Some(int64(math.MinInt64))},
		{input: "9223372036854775807.5", want: domain.Some(int64(math.MaxInt64))},
		{input: "9223372036854775808", want: domain.None[int64]()},
		{input: "1e20", want: domain.None[int64]()},
		{input: "-1e20", want: domain.None[int64]()},
		{input: "abc", want: domain.None[int64]()},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseInteger(domain.TextCell(tt.input)))
		})
	}
}

func TestNormalize_SchemaError(t *testing.T) {
	tests := []struct {
		name    string
		table   *domain.RawTable
		missing []string
	}{
		{
			name: "coluna VALOR ausente",
			table: &domain.RawTable{
				Headers: []string{"ORD", "NOME", "Cliente", "MESA", "DATA_REC"},
				Rows:    [][]domain.Cell{row("1", "Ana", "C", "1", "x")},
			},
			missing: []string{"VALOR"},
		},
		{
			name: "coluna obrigatória totalmente vazia é descartada antes da projeção",
			table: &domain.RawTable{
				Headers: domain.DefaultColumnSet().Names(),
				Rows:    [][]domain.Cell{row("1", "Ana", "C", "1", "600", "")},
			},
			missing: []string{"DATA_REC"},
		},
		{
			name:    "tabela vazia",
			table:   &domain.RawTable{},
			missing: domain.DefaultColumnSet().Names(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Normalize(tt.table, domain.DefaultColumnSet())
			require.Error(t, err)
			assert.Nil(t, records)

			var schemaErr *domain.SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, tt.missing, schemaErr.Missing)
		})
	}
}

func TestNormalize_CustomColumnSet(t *testing.T) {
	columns := domain.ColumnSet{
		Ordinal:     "N",
		Responsible: "VENDEDOR",
		Client:      "CLIENTE",
		TableNumber: "MESA",
		Amount:      "PAGO",
		ReceiptDate: "DATA",
	}
	table := &domain.RawTable{
		Headers: []string{"N", "VENDEDOR", "CLIENTE", "MESA", "PAGO", "DATA"},
		Rows:    [][]domain.Cell{row("1", "Ana", "C", "3", "600", "hoje")},
	}

	records, err := Normalize(table, columns)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.ClassificationTablePaid, records[0].Classification)
}

func TestNormalize_Idempotent(t *testing.T) {
	columns := domain.DefaultColumnSet()
	table := &domain.RawTable{
		Headers: []string{"ORD ", " NOME", "Cliente", "MESA", "VALOR", "DATA_REC"},
		Rows: [][]domain.Cell{
			row("3", "Ana", "", "7", "1.200,50", "x"),
			row("1", "", "Beto", "", "", ""),
			row("", "Ana", "Ciro", "1", "600", "y"),
			row("2", "Caio", "Dani", "-1", "abc", "z"),
		},
	}

	first, err := Normalize(table, columns)
	require.NoError(t, err)

	second, err := Normalize(Table(first, columns), columns)
	require.NoError(t, err)

	assertRecordsEqual(t, first, second)
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		input    string
		valid    bool
		expected string
	}{
		{input: "600", valid: true, expected: "600"},
		{input: " 600.5 ", valid: true, expected: "600.5"},
		{input: "600,00", valid: true, expected: "600"},
		{input: "R$ 1.200,50", valid: true, expected: "1200.5"},
		{input: "R$600", valid: true, expected: "600"},
		{input: "1e3", valid: true, expected: "1000"},
		{input: "abc", valid: false},
		{input: "", valid: false},
		{input: "   ", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value := parseNumeric(domain.TextCell(tt.input))
			assert.Equal(t, tt.valid, value.Valid)
			if tt.valid {
				assert.True(t, value.Decimal.Equal(decimal.RequireFromString(tt.expected)), "got %s", value.Decimal)
			}
		})
	}
}
