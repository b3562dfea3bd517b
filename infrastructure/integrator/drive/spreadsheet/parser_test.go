package spreadsheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook monta uma planilha no formato da planilha do baile:
// três linhas de título antes do cabeçalho.
func buildWorkbook(t *testing.T, sheet string) []byte {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close()

	if sheet != "Sheet1" {
		_, err := file.NewSheet(sheet)
		require.NoError(t, err)
	}

	rows := [][]any{
		{"BAILE 2025"},
		{"Controle de mesas"},
		{},
		{"ORD", "NOME", "Cliente", "MESA", "VALOR", "DATA_REC", ""},
		{1, "Ana", "Carlos", 10, 600, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)},
		{2, "Bruno", nil, nil, nil, nil},
		{3, "Ana", "Duda", 12, 1200.5, "a combinar", "obs"},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow(sheet, cell, &row))
	}

	buffer, err := file.WriteToBuffer()
	require.NoError(t, err)
	return buffer.Bytes()
}

func TestParse(t *testing.T) {
	data := buildWorkbook(t, "Mesas")

	table, err := Parse(data, Options{Sheet: "Mesas", HeaderRow: 3, DateColumns: []string{"DATA_REC"}})
	require.NoError(t, err)

	require.Len(t, table.Headers, 7)
	assert.Equal(t, []string{"ORD", "NOME", "Cliente", "MESA", "VALOR", "DATA_REC", ""}, table.Headers)
	require.Len(t, table.Rows, 3)

	first := table.Rows[0]
	assert.Equal(t, domain.TextCell("1"), first[0])
	assert.Equal(t, domain.TextCell("Ana"), first[1])
	assert.Equal(t, domain.TextCell("600"), first[4])
	assert.Equal(t, domain.TextCell("01/10/2025"), first[5])
	assert.False(t, first[6].Present)

	second := table.Rows[1]
	require.Len(t, second, 7)
	assert.False(t, second[2].Present)
	assert.False(t, second[4].Present)

	third := table.Rows[2]
	assert.Equal(t, domain.TextCell("1200.5"), third[4])
	assert.Equal(t, domain.TextCell("a combinar"), third[5])
	assert.Equal(t, domain.TextCell("obs"), third[6])
}

func TestParse_Errors(t *testing.T) {
	data := buildWorkbook(t, "Mesas")

	_, err := Parse(data, Options{Sheet: "Convidados", HeaderRow: 3})
	assert.ErrorIs(t, err, ErrSheetNotFound)

	_, err = Parse(data, Options{Sheet: "Mesas", HeaderRow: 50})
	assert.ErrorIs(t, err, ErrHeaderNotFound)

	_, err = Parse([]byte("isto não é um xlsx"), Options{Sheet: "Mesas", HeaderRow: 3})
	assert.Error(t, err)
}

func TestParse_DefaultSheet(t *testing.T) {
	data := buildWorkbook(t, "Sheet1")

	table, err := Parse(data, Options{HeaderRow: 3})
	require.NoError(t, err)
	assert.Equal(t, "ORD", table.Headers[0])
}

func TestSerialToDate(t *testing.T) {
	assert.Equal(t, "01/10/2025", serialToDate("45931", false))
	assert.Equal(t, "-", serialToDate("-", false))
	assert.Equal(t, "", serialToDate("", false))
	assert.Equal(t, "01/10/2025", serialToDate("01/10/2025", false))
}
