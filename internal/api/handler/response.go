package handler

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
	"github.com/vfg2006/baile-dashboard-api/pkg/log"
	"github.com/vfg2006/baile-dashboard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Money leva o valor exato e o texto já formatado para exibição
type Money struct {
	Value     decimal.Decimal `json:"value"`
	Formatted string          `json:"formatted"`
}

func newMoney(value decimal.Decimal) Money {
	return Money{Value: value, Formatted: utils.FormatBRL(value)}
}

type ClassificationCountResponse struct {
	Classification domain.Classification `json:"classification"`
	Count          int                   `json:"count"`
}

type ResponsibleResponse struct {
	Name             string `json:"name"`
	Records          int    `json:"records"`
	Amount           Money  `json:"amount"`
	SponsorshipCount int    `json:"sponsorship_count"`
	Projection       Money  `json:"projection"`
	BalanceDue       Money  `json:"balance_due"`
}

type CumulativeResponse struct {
	Ordinal    int64 `json:"ordinal"`
	Amount     Money `json:"amount"`
	Cumulative Money `json:"cumulative"`
}

type RecordResponse struct {
	domain.SalesRecord
	AmountFormatted string `json:"amount_formatted"`
}

type DashboardResponse struct {
	ExpectedTotal        int64                         `json:"expected_total"`
	RecordCount          int                           `json:"record_count"`
	ReceivedTotal        Money                         `json:"received_total"`
	Projection           Money                         `json:"projection"`
	ProjectionMode       domain.ProjectionMode         `json:"projection_mode"`
	BalanceDue           Money                         `json:"balance_due"`
	CompletionPct        float64                       `json:"completion_pct"`
	SponsorshipCount     int                           `json:"sponsorship_count"`
	ClassificationCounts []ClassificationCountResponse `json:"classification_counts"`
	Responsibles         []ResponsibleResponse         `json:"responsibles"`
	TopResponsibles      []ResponsibleResponse         `json:"top_responsibles"`
	Cumulative           []CumulativeResponse          `json:"cumulative"`
	MissingOrdinals      []int64                       `json:"missing_ordinals"`
	MissingCount         int64                         `json:"missing_count"`
	MissingTruncated     bool                          `json:"missing_truncated"`
	UpdatedAt            time.Time                     `json:"updated_at"`
	UpdatedAtFormatted   string                        `json:"updated_at_formatted"`
}

type SnapshotResponse struct {
	ID                 string                `json:"id"`
	ExpectedTotal      int64                 `json:"expected_total"`
	RecordCount        int                   `json:"record_count"`
	ReceivedTotal      Money                 `json:"received_total"`
	Projection         Money                 `json:"projection"`
	ProjectionMode     domain.ProjectionMode `json:"projection_mode"`
	BalanceDue         Money                 `json:"balance_due"`
	CompletionPct      float64               `json:"completion_pct"`
	SponsorshipCount   int                   `json:"sponsorship_count"`
	CreatedAt          time.Time             `json:"created_at"`
	CreatedAtFormatted string                `json:"created_at_formatted"`
	Dashboard          *DashboardResponse    `json:"dashboard,omitempty"`
}

// Presenter converte os tipos de domínio nos formatos de resposta da API
type Presenter struct {
	Location *time.Location
}

func (p Presenter) Dashboard(d *domain.Dashboard) DashboardResponse {
	counts := make([]ClassificationCountResponse, 0, len(domain.Classifications))
	for _, c := range domain.Classifications {
		counts = append(counts, ClassificationCountResponse{Classification: c, Count: d.ClassificationCounts[c]})
	}

	missing := d.MissingOrdinals
	if missing == nil {
		missing = []int64{}
	}

	return DashboardResponse{
		ExpectedTotal:        d.ExpectedTotal,
		RecordCount:          d.RecordCount,
		ReceivedTotal:        newMoney(d.ReceivedTotal),
		Projection:           newMoney(d.Projection),
		ProjectionMode:       d.ProjectionMode,
		BalanceDue:           newMoney(d.BalanceDue),
		CompletionPct:        utils.RoundWithTwoDecimalPlace(d.CompletionPct),
		SponsorshipCount:     d.SponsorshipCount,
		ClassificationCounts: counts,
		Responsibles:         p.Responsibles(d.Responsibles),
		TopResponsibles:      p.Responsibles(d.TopResponsibles),
		Cumulative:           p.Cumulative(d.Cumulative),
		MissingOrdinals:      missing,
		MissingCount:         d.MissingCount,
		MissingTruncated:     d.MissingTruncated,
		UpdatedAt:            d.UpdatedAt,
		UpdatedAtFormatted:   utils.FormatDateTimeBR(d.UpdatedAt, p.Location),
	}
}

func (p Presenter) Responsibles(summaries []domain.ResponsibleSummary) []ResponsibleResponse {
	response := make([]ResponsibleResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, ResponsibleResponse{
			Name:             s.Name,
			Records:          s.Records,
			Amount:           newMoney(s.Amount),
			SponsorshipCount: s.SponsorshipCount,
			Projection:       newMoney(s.Projection),
			BalanceDue:       newMoney(s.BalanceDue),
		})
	}
	return response
}

func (p Presenter) Cumulative(points []domain.CumulativePoint) []CumulativeResponse {
	response := make([]CumulativeResponse, 0, len(points))
	for _, point := range points {
		response = append(response, CumulativeResponse{
			Ordinal:    point.Ordinal,
			Amount:     newMoney(point.Amount),
			Cumulative: newMoney(point.Cumulative),
		})
	}
	return response
}

func (p Presenter) Records(records []domain.SalesRecord) []RecordResponse {
	response := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		response = append(response, RecordResponse{SalesRecord: r, AmountFormatted: utils.FormatBRL(r.Amount)})
	}
	return response
}

func (p Presenter) Snapshot(s *domain.DashboardSnapshot) SnapshotResponse {
	response := SnapshotResponse{
		ID:                 s.ID,
		ExpectedTotal:      s.ExpectedTotal,
		RecordCount:        s.RecordCount,
		ReceivedTotal:      newMoney(s.ReceivedTotal),
		Projection:         newMoney(s.Projection),
		ProjectionMode:     s.ProjectionMode,
		BalanceDue:         newMoney(s.BalanceDue),
		CompletionPct:      utils.RoundWithTwoDecimalPlace(s.CompletionPct),
		SponsorshipCount:   s.SponsorshipCount,
		CreatedAt:          s.CreatedAt,
		CreatedAtFormatted: utils.FormatDateTimeBR(s.CreatedAt, p.Location),
	}

	if s.Payload != nil {
		dashboard := p.Dashboard(s.Payload)
		response.Dashboard = &dashboard
	}

	return response
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}
