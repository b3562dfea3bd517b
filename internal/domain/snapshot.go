package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSnapshot é o registro histórico de um dashboard calculado
type DashboardSnapshot struct {
	ID               string          `json:"id"`
	ExpectedTotal    int64           `json:"expected_total"`
	RecordCount      int             `json:"record_count"`
	ReceivedTotal    decimal.Decimal `json:"received_total"`
	Projection       decimal.Decimal `json:"projection"`
	BalanceDue       decimal.Decimal `json:"balance_due"`
	CompletionPct    float64         `json:"completion_pct"`
	SponsorshipCount int             `json:"sponsorship_count"`
	ProjectionMode   ProjectionMode  `json:"projection_mode"`
	Payload          *Dashboard      `json:"payload,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewDashboardSnapshot copia os totais do dashboard para um snapshot
func NewDashboardSnapshot(id string, d *Dashboard) *DashboardSnapshot {
	return &DashboardSnapshot{
		ID:               id,
		ExpectedTotal:    d.ExpectedTotal,
		RecordCount:      d.RecordCount,
		ReceivedTotal:    d.ReceivedTotal,
		Projection:       d.Projection,
		BalanceDue:       d.BalanceDue,
		CompletionPct:    d.CompletionPct,
		SponsorshipCount: d.SponsorshipCount,
		ProjectionMode:   d.ProjectionMode,
		Payload:          d,
		CreatedAt:        d.UpdatedAt,
	}
}
