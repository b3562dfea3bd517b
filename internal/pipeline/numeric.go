package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
)

// parseNumeric converte a célula em número. Células vazias ou que não
// representam um número viram ausentes, nunca erro.
func parseNumeric(cell domain.Cell) decimal.NullDecimal {
	if !cell.Present {
		return decimal.NullDecimal{}
	}

	text := strings.TrimSpace(cell.Value)

	if value, err := decimal.NewFromString(text); err == nil {
		return decimal.NullDecimal{Decimal: value, Valid: true}
	}

	// Texto digitado no formato brasileiro: "R$ 1.200,50"
	text = strings.TrimPrefix(text, "R$")
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, "\u00a0", "")
	if strings.Contains(text, ",") {
		text = strings.ReplaceAll(text, ".", "")
		text = strings.Replace(text, ",", ".", 1)
	}

	value, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: value, Valid: true}
}

var (
	minInteger = decimal.NewFromInt(math.MinInt64)
	maxInteger = decimal.NewFromInt(math.MaxInt64)
)

// parseInteger converte a célula em inteiro, truncando a parte decimal.
// Valores fora da faixa de int64 viram ausentes.
func parseInteger(cell domain.Cell) domain.Nullable[int64] {
	value := parseNumeric(cell)
	if !value.Valid {
		return domain.None[int64]()
	}

	integer := value.Decimal.Truncate(0)
	if integer.LessThan(minInteger) || integer.GreaterThan(maxInteger) {
		return domain.None[int64]()
	}
	return domain.Some(integer.IntPart())
}

func formatInt(value int64) string {
	return strconv.FormatInt(value, 10)
}
