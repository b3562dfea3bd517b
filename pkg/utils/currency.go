package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL formata o valor no padrão brasileiro: "R$ 1.234,56"
func FormatBRL(value decimal.Decimal) string {
	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Neg()
	}

	fixed := value.StringFixed(2)
	integer, cents, _ := strings.Cut(fixed, ".")

	return "R$ " + sign + groupThousands(integer) + "," + cents
}

// FormatBRLInt formata um valor inteiro no padrão brasileiro
func FormatBRLInt(value int64) string {
	return FormatBRL(decimal.NewFromInt(value))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
