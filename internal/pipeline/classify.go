package pipeline

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
)

// Tabela de preços do baile
var (
	tablePrice       = decimal.NewFromInt(600)
	halfEntryPrice   = decimal.NewFromInt(300)
	sponsorshipFloor = decimal.NewFromInt(1000)
)

// Classify classifica uma mesa pelo valor recebido. A ordem das verificações
// importa: ausente e zero são a mesma classe, e os valores exatos de 600 e 300
// são testados antes do piso de patrocínio.
func Classify(amount decimal.NullDecimal) domain.Classification {
	switch {
	case !amount.Valid || amount.Decimal.IsZero():
		return domain.ClassificationPending
	case amount.Decimal.Equal(tablePrice):
		return domain.ClassificationTablePaid
	case amount.Decimal.Equal(halfEntryPrice):
		return domain.ClassificationHalfEntry
	case amount.Decimal.GreaterThanOrEqual(sponsorshipFloor):
		return domain.ClassificationSponsorship
	default:
		return domain.ClassificationOther
	}
}
