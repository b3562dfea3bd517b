// Package spreadsheet lê a planilha xlsx e monta a tabela bruta usada pelo pipeline
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vfg2006/baile-dashboard-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "02/01/2006"

var (
	ErrSheetNotFound  = errors.New("aba não encontrada na planilha")
	ErrHeaderNotFound = errors.New("linha de cabeçalho não encontrada na planilha")
)

type Options struct {
	// Sheet é o nome da aba; vazio usa a primeira aba
	Sheet string
	// HeaderRow é o índice (a partir de 0) da linha de cabeçalho
	HeaderRow int
	// DateColumns são colunas cujos números seriais do Excel viram "dd/mm/aaaa"
	DateColumns []string
}

// Parse abre a planilha e devolve o cabeçalho e as linhas seguintes.
// Os valores são lidos sem a formatação de exibição do Excel.
func Parse(data []byte, opts Options) (*domain.RawTable, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir planilha: %w", err)
	}
	defer file.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = file.GetSheetName(0)
	}

	index, err := file.GetSheetIndex(sheet)
	if err != nil || index < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("erro ao ler aba %q: %w", sheet, err)
	}

	if opts.HeaderRow < 0 || opts.HeaderRow >= len(rows) {
		return nil, fmt.Errorf("%w: linha %d de %d", ErrHeaderNotFound, opts.HeaderRow+1, len(rows))
	}

	body := rows[opts.HeaderRow+1:]

	width := len(rows[opts.HeaderRow])
	for _, row := range body {
		if len(row) > width {
			width = len(row)
		}
	}

	table := &domain.RawTable{
		Headers: make([]string, width),
		Rows:    make([][]domain.Cell, 0, len(body)),
	}
	copy(table.Headers, rows[opts.HeaderRow])

	dateColumns := make(map[int]bool)
	for i, header := range table.Headers {
		for _, name := range opts.DateColumns {
			if strings.TrimSpace(header) == name {
				dateColumns[i] = true
			}
		}
	}

	date1904 := uses1904Dates(file)

	for _, row := range body {
		cells := make([]domain.Cell, width)
		for i, value := range row {
			if dateColumns[i] {
				value = serialToDate(value, date1904)
			}
			cells[i] = domain.TextCell(value)
		}
		table.Rows = append(table.Rows, cells)
	}

	return table, nil
}

func uses1904Dates(file *excelize.File) bool {
	props, err := file.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

// serialToDate converte o número serial do Excel em data. Textos que não
// são números seguem como estão.
func serialToDate(value string, date1904 bool) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || serial <= 0 {
		return value
	}

	date, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return value
	}
	return date.Format(dateLayout)
}
