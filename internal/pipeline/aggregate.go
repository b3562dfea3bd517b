package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
)

const (
	// TopResponsiblesLimit é a quantidade de responsáveis na visão por valor
	TopResponsiblesLimit = 10
	// MissingOrdinalsLimit limita a lista de ordens faltantes; a contagem
	// total continua em MissingCount
	MissingOrdinalsLimit = 5000
)

var hundred = decimal.NewFromInt(100)

// Aggregate calcula as métricas do dashboard a partir dos registros finalizados
func Aggregate(records []domain.SalesRecord, projection domain.ProjectionConfig) *domain.Dashboard {
	dashboard := &domain.Dashboard{
		RecordCount:          len(records),
		ReceivedTotal:        decimal.Zero,
		ProjectionMode:       projection.Mode,
		ClassificationCounts: ClassificationCounts(records),
		Records:              records,
	}

	for _, r := range records {
		if r.Ordinal > dashboard.ExpectedTotal {
			dashboard.ExpectedTotal = r.Ordinal
		}
		if r.Amount.IsPositive() {
			dashboard.ReceivedTotal = dashboard.ReceivedTotal.Add(r.Amount)
		}
	}

	dashboard.SponsorshipCount = dashboard.ClassificationCounts[domain.ClassificationSponsorship]
	dashboard.Projection = projection.Project(dashboard.ExpectedTotal, dashboard.SponsorshipCount)
	dashboard.BalanceDue = dashboard.Projection.Sub(dashboard.ReceivedTotal)
	dashboard.CompletionPct = CompletionPct(dashboard.ReceivedTotal, dashboard.Projection)
	dashboard.MissingOrdinals, dashboard.MissingCount = MissingOrdinals(records, dashboard.ExpectedTotal, MissingOrdinalsLimit)
	dashboard.MissingTruncated = int64(len(dashboard.MissingOrdinals)) < dashboard.MissingCount
	dashboard.Responsibles = SummarizeByResponsible(records, projection)
	dashboard.TopResponsibles = TopByAmount(dashboard.Responsibles, TopResponsiblesLimit)
	dashboard.Cumulative = CumulativeSeries(records)

	return dashboard
}

// CompletionPct retorna recebido / previsão * 100, ou zero quando não há previsão
func CompletionPct(received, projection decimal.Decimal) float64 {
	if !projection.IsPositive() {
		return 0
	}
	return received.Div(projection).Mul(hundred).InexactFloat64()
}

func ClassificationCounts(records []domain.SalesRecord) map[domain.Classification]int {
	counts := make(map[domain.Classification]int)
	for _, r := range records {
		counts[r.Classification]++
	}
	return counts
}

// MissingOrdinals lista as mesas do intervalo [1, expectedTotal] que nunca
// foram lançadas na planilha, no máximo limit itens quando limit > 0.
// count é o total de faltantes, mesmo quando a lista é cortada.
func MissingOrdinals(records []domain.SalesRecord, expectedTotal int64, limit int) (missing []int64, count int64) {
	present := make([]int64, 0, len(records))
	for _, r := range records {
		if r.Ordinal >= 1 && r.Ordinal <= expectedTotal {
			present = append(present, r.Ordinal)
		}
	}
	sort.Slice(present, func(i, j int) bool { return present[i] < present[j] })

	missing = make([]int64, 0)
	// gap registra as n ordens faltantes a partir de first
	gap := func(first, n int64) {
		if n <= 0 {
			return
		}
		count += n
		for i := int64(0); i < n; i++ {
			if limit > 0 && len(missing) >= limit {
				return
			}
			missing = append(missing, first+i)
		}
	}

	previous := int64(0)
	for _, ordinal := range present {
		if ordinal == previous {
			continue
		}
		gap(previous+1, ordinal-previous-1)
		previous = ordinal
	}
	gap(previous+1, expectedTotal-previous)

	return missing, count
}

// SummarizeByResponsible agrupa os registros por responsável, ordenando
// pela quantidade de mesas (decrescente) e depois pelo nome
func SummarizeByResponsible(records []domain.SalesRecord, projection domain.ProjectionConfig) []domain.ResponsibleSummary {
	groups := make(map[string]*domain.ResponsibleSummary)
	for _, r := range records {
		group, exists := groups[r.Responsible]
		if !exists {
			group = &domain.ResponsibleSummary{Name: r.Responsible, Amount: decimal.Zero}
			groups[r.Responsible] = group
		}
		group.Records++
		group.Amount = group.Amount.Add(r.Amount)
		if r.Classification == domain.ClassificationSponsorship {
			group.SponsorshipCount++
		}
	}

	summaries := make([]domain.ResponsibleSummary, 0, len(groups))
	for _, group := range groups {
		group.Projection = projection.Project(int64(group.Records), group.SponsorshipCount)
		group.BalanceDue = group.Projection.Sub(group.Amount)
		summaries = append(summaries, *group)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Records != summaries[j].Records {
			return summaries[i].Records > summaries[j].Records
		}
		return summaries[i].Name < summaries[j].Name
	})

	return summaries
}

// TopByAmount devolve uma cópia dos resumos ordenada pelo valor (decrescente),
// limitada a limit itens quando limit > 0
func TopByAmount(summaries []domain.ResponsibleSummary, limit int) []domain.ResponsibleSummary {
	sorted := make([]domain.ResponsibleSummary, len(summaries))
	copy(sorted, summaries)

	sort.SliceStable(sorted, func(i, j int) bool {
		if cmp := sorted[i].Amount.Cmp(sorted[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return sorted[i].Name < sorted[j].Name
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// CumulativeSeries ordena os registros pelo ORD e acumula os valores nessa ordem
func CumulativeSeries(records []domain.SalesRecord) []domain.CumulativePoint {
	sorted := make([]domain.SalesRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Ordinal < sorted[j].Ordinal
	})

	points := make([]domain.CumulativePoint, 0, len(sorted))
	running := decimal.Zero
	for _, r := range sorted {
		running = running.Add(r.Amount)
		points = append(points, domain.CumulativePoint{
			Ordinal:    r.Ordinal,
			Amount:     r.Amount,
			Cumulative: running,
		})
	}
	return points
}
