// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"github.com/shopspring/decimal"
)

// Valores de preenchimento usados quando a célula está ausente
const (
	MissingText        = "-"
	MissingTableNumber = int64(-1)
)

type Classification string

const (
	ClassificationPending     Classification = "PENDENTE"
	ClassificationTablePaid   Classification = "MESA PAGA"
	ClassificationHalfEntry   Classification = "MEIA ENTRADA"
	ClassificationSponsorship Classification = "PATROCÍNIO"
	ClassificationOther       Classification = "OUTRO"
)

// Classifications lista as classificações na ordem de apresentação
var Classifications = []Classification{
	ClassificationPending,
	ClassificationTablePaid,
	ClassificationHalfEntry,
	ClassificationSponsorship,
	ClassificationOther,
}

func ParseClassification(value string) (Classification, bool) {
	for _, c := range Classifications {
		if string(c) == value {
			return c, true
		}
	}
	return "", false
}

// ColumnSet contém os nomes das seis colunas obrigatórias da planilha
type ColumnSet struct {
	Ordinal     string
	Responsible string
	Client      string
	TableNumber string
	Amount      string
	ReceiptDate string
}

// DefaultColumnSet retorna as colunas da aba "Mesas"
func DefaultColumnSet() ColumnSet {
	return ColumnSet{
		Ordinal:     "ORD",
		Responsible: "NOME",
		Client:      "Cliente",
		TableNumber: "MESA",
		Amount:      "VALOR",
		ReceiptDate: "DATA_REC",
	}
}

// Names retorna as colunas na ordem de projeção
func (c ColumnSet) Names() []string {
	return []string{c.Ordinal, c.Responsible, c.Client, c.TableNumber, c.Amount, c.ReceiptDate}
}

// SalesRecord é o registro limpo de uma mesa vendida
type SalesRecord struct {
	Ordinal        int64           `json:"ordinal"`
	Responsible    string          `json:"responsible"`
	Client         string          `json:"client"`
	TableNumber    Nullable[int64] `json:"table_number"`
	Amount         decimal.Decimal `json:"amount"`
	AmountReported bool            `json:"amount_reported"`
	ReceiptDate    string          `json:"receipt_date"`
	Classification Classification  `json:"classification"`
}

// ReportedAmount devolve o valor como opcional, distinguindo célula vazia de zero
func (r SalesRecord) ReportedAmount() decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: r.Amount, Valid: r.AmountReported}
}
