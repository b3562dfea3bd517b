package pipeline

import (
	"strings"

	"github.com/vfg2006/baile-dashboard-api/internal/domain"
)

// Normalize limpa a tabela bruta e devolve os registros com ORD preenchido.
//
// Colunas e linhas totalmente vazias são descartadas, os cabeçalhos são
// aparados e a tabela é projetada nas seis colunas obrigatórias. Células
// numéricas inválidas viram ausentes e recebem os valores de preenchimento;
// o ORD nunca é preenchido e linhas sem ORD são descartadas.
func Normalize(table *domain.RawTable, columns domain.ColumnSet) ([]domain.SalesRecord, error) {
	if table == nil {
		table = &domain.RawTable{}
	}

	kept := nonEmptyColumns(table)
	rows := nonEmptyRows(table, kept)

	index := make(map[string]int, len(kept))
	for _, col := range kept {
		header := ""
		if col < len(table.Headers) {
			header = strings.TrimSpace(table.Headers[col])
		}
		if _, exists := index[header]; !exists {
			index[header] = col
		}
	}

	missing := make([]string, 0)
	for _, name := range columns.Names() {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.SchemaError{Missing: missing}
	}

	records := make([]domain.SalesRecord, 0, len(rows))
	for _, row := range rows {
		ordinal := parseInteger(table.Cell(row, index[columns.Ordinal]))
		if !ordinal.Valid {
			continue
		}

		amount := parseNumeric(table.Cell(row, index[columns.Amount]))

		record := domain.SalesRecord{
			Ordinal:        ordinal.Value,
			Responsible:    textOrMissing(table.Cell(row, index[columns.Responsible])),
			Client:         textOrMissing(table.Cell(row, index[columns.Client])),
			TableNumber:    parseInteger(table.Cell(row, index[columns.TableNumber])),
			Amount:         amount.Decimal,
			AmountReported: amount.Valid,
			ReceiptDate:    textOrMissing(table.Cell(row, index[columns.ReceiptDate])),
		}
		record.Classification = Classify(amount)

		records = append(records, record)
	}

	return records, nil
}

// Table converte registros já limpos de volta para uma tabela bruta com as
// colunas informadas. Valores ausentes voltam a ser células vazias.
func Table(records []domain.SalesRecord, columns domain.ColumnSet) *domain.RawTable {
	table := &domain.RawTable{
		Headers: columns.Names(),
		Rows:    make([][]domain.Cell, 0, len(records)),
	}

	for _, r := range records {
		tableNumber := domain.EmptyCell()
		if r.TableNumber.Valid {
			tableNumber = domain.TextCell(formatInt(r.TableNumber.Value))
		}

		amount := domain.EmptyCell()
		if r.AmountReported {
			amount = domain.TextCell(r.Amount.String())
		}

		table.Rows = append(table.Rows, []domain.Cell{
			domain.TextCell(formatInt(r.Ordinal)),
			domain.TextCell(r.Responsible),
			domain.TextCell(r.Client),
			tableNumber,
			amount,
			domain.TextCell(r.ReceiptDate),
		})
	}

	return table
}

func nonEmptyColumns(table *domain.RawTable) []int {
	width := len(table.Headers)
	for _, row := range table.Rows {
		if len(row) > width {
			width = len(row)
		}
	}

	kept := make([]int, 0, width)
	for col := 0; col < width; col++ {
		for row := range table.Rows {
			if table.Cell(row, col).Present {
				kept = append(kept, col)
				break
			}
		}
	}
	return kept
}

func nonEmptyRows(table *domain.RawTable, columns []int) []int {
	rows := make([]int, 0, len(table.Rows))
	for row := range table.Rows {
		for _, col := range columns {
			if table.Cell(row, col).Present {
				rows = append(rows, row)
				break
			}
		}
	}
	return rows
}

func textOrMissing(cell domain.Cell) string {
	if !cell.Present {
		return domain.MissingText
	}
	return cell.Value
}
