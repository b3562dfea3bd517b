package domain

import "strings"

// Cell é uma célula da planilha sem tipo garantido
type Cell struct {
	Value   string
	Present bool
}

// TextCell cria uma célula a partir do texto lido da planilha.
// Células somente com espaços são tratadas como vazias.
func TextCell(value string) Cell {
	return Cell{Value: value, Present: strings.TrimSpace(value) != ""}
}

// EmptyCell representa uma célula vazia
func EmptyCell() Cell {
	return Cell{}
}

// RawTable é a tabela retangular lida da planilha, antes de qualquer limpeza.
// Existe apenas durante uma execução do pipeline.
type RawTable struct {
	Headers []string
	Rows    [][]Cell
}

// Cell retorna a célula da linha/coluna informada, ou uma célula vazia
// quando a linha for mais curta que o cabeçalho.
func (t *RawTable) Cell(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) {
		return EmptyCell()
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return EmptyCell()
	}
	return t.Rows[row][col]
}
