package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProjectionMode string

const (
	// ProjectionSimple considera apenas o preço da mesa: total esperado x preço
	ProjectionSimple ProjectionMode = "simple"
	// ProjectionSponsorship soma o adicional de cada patrocínio ao preço base
	ProjectionSponsorship ProjectionMode = "sponsorship"
)

// ProjectionConfig define como a previsão de arrecadação é calculada
type ProjectionConfig struct {
	Mode                 ProjectionMode
	TablePrice           decimal.Decimal
	SponsorshipSurcharge decimal.Decimal
}

func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		Mode:                 ProjectionSponsorship,
		TablePrice:           decimal.NewFromInt(600),
		SponsorshipSurcharge: decimal.NewFromInt(400),
	}
}

// Project calcula a previsão para uma quantidade de mesas e de patrocínios
func (p ProjectionConfig) Project(tables int64, sponsorships int) decimal.Decimal {
	projection := p.TablePrice.Mul(decimal.NewFromInt(tables))
	if p.Mode == ProjectionSponsorship {
		projection = projection.Add(p.SponsorshipSurcharge.Mul(decimal.NewFromInt(int64(sponsorships))))
	}
	return projection
}

// ResponsibleSummary é o resumo das mesas de um responsável
type ResponsibleSummary struct {
	Name             string          `json:"name"`
	Records          int             `json:"records"`
	Amount           decimal.Decimal `json:"amount"`
	SponsorshipCount int             `json:"sponsorship_count"`
	Projection       decimal.Decimal `json:"projection"`
	BalanceDue       decimal.Decimal `json:"balance_due"`
}

// CumulativePoint é um ponto da curva de valor acumulado por ordem de mesa
type CumulativePoint struct {
	Ordinal    int64           `json:"ordinal"`
	Amount     decimal.Decimal `json:"amount"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// Dashboard é o pacote de métricas entregue ao front-end
type Dashboard struct {
	ExpectedTotal        int64                  `json:"expected_total"`
	RecordCount          int                    `json:"record_count"`
	ReceivedTotal        decimal.Decimal        `json:"received_total"`
	SponsorshipCount     int                    `json:"sponsorship_count"`
	ProjectionMode       ProjectionMode         `json:"projection_mode"`
	Projection           decimal.Decimal        `json:"projection"`
	BalanceDue           decimal.Decimal        `json:"balance_due"`
	CompletionPct        float64                `json:"completion_pct"`
	ClassificationCounts map[Classification]int `json:"classification_counts"`
	Responsibles         []ResponsibleSummary   `json:"responsibles"`
	TopResponsibles      []ResponsibleSummary   `json:"top_responsibles"`
	Cumulative           []CumulativePoint      `json:"cumulative"`
	MissingOrdinals      []int64                `json:"missing_ordinals"`
	MissingCount         int64                  `json:"missing_count"`
	MissingTruncated     bool                   `json:"missing_truncated"`
	Records              []SalesRecord          `json:"-"`
	UpdatedAt            time.Time              `json:"updated_at"`
}
