package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/baile-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
	"github.com/vfg2006/baile-dashboard-api/internal/pipeline"
	"github.com/vfg2006/baile-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/baile-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/baile-dashboard-api/pkg/log"
)

const (
	SortByCount  = "count"
	SortByAmount = "amount"
)

// GetDashboard retorna o pacote completo de métricas
func GetDashboard(service reporting.Reporter, presenter Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := service.GetDashboard(r.Context())
		if err != nil {
			handleReportingError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, presenter.Dashboard(dashboard))
	}
}

// GetResponsibles retorna o resumo por responsável, ordenado pela quantidade
// de mesas (padrão) ou pelo valor recebido
func GetResponsibles(service reporting.Reporter, presenter Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		sortBy := strings.ToLower(strings.TrimSpace(query.Get("sort")))
		if sortBy == "" {
			sortBy = SortByCount
		}
		if sortBy != SortByCount && sortBy != SortByAmount {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro sort inválido. Valores aceitos: count, amount", map[string]any{
				"sort": sortBy,
			})
			return
		}

		limit, ok := parseLimit(w, query.Get("limit"))
		if !ok {
			return
		}

		dashboard, err := service.GetDashboard(r.Context())
		if err != nil {
			handleReportingError(w, r, err)
			return
		}

		summaries := dashboard.Responsibles
		if sortBy == SortByAmount {
			summaries = pipeline.TopByAmount(summaries, limit)
		} else if limit > 0 && len(summaries) > limit {
			summaries = summaries[:limit]
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"sort":         sortBy,
			"responsibles": presenter.Responsibles(summaries),
		})
	}
}

// GetCumulative retorna a curva de valor acumulado por ordem de mesa
func GetCumulative(service reporting.Reporter, presenter Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := service.GetDashboard(r.Context())
		if err != nil {
			handleReportingError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"cumulative": presenter.Cumulative(dashboard.Cumulative),
		})
	}
}

// GetMissing retorna as ordens de mesa que ainda não foram lançadas
func GetMissing(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := service.GetDashboard(r.Context())
		if err != nil {
			handleReportingError(w, r, err)
			return
		}

		missing := dashboard.MissingOrdinals
		if missing == nil {
			missing = []int64{}
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"expected_total":    dashboard.ExpectedTotal,
			"missing_ordinals":  missing,
			"missing_count":     dashboard.MissingCount,
			"missing_truncated": dashboard.MissingTruncated,
		})
	}
}

// GetRecords lista os registros limpos, opcionalmente filtrados pela classificação
func GetRecords(service reporting.Reporter, presenter Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter *domain.Classification

		if value := strings.TrimSpace(r.URL.Query().Get("classification")); value != "" {
			classification, ok := domain.ParseClassification(strings.ToUpper(value))
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Classificação inválida", map[string]any{
					"classification": value,
					"accepted":       domain.Classifications,
				})
				return
			}
			filter = &classification
		}

		records, err := service.GetRecords(r.Context(), filter)
		if err != nil {
			handleReportingError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"count":   len(records),
			"records": presenter.Records(records),
		})
	}
}

// RefreshDashboard descarta a planilha em memória e baixa novamente
func RefreshDashboard(service reporting.Reporter, presenter Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("Atualização do dashboard solicitada")

		dashboard, err := service.Refresh(r.Context())
		if err != nil {
			handleReportingError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, presenter.Dashboard(dashboard))
	}
}

// GetHistory lista os snapshots mais recentes
func GetHistory(service reporting.Reporter, presenter Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLimit(w, r.URL.Query().Get("limit"))
		if !ok {
			return
		}

		snapshots, err := service.ListSnapshots(r.Context(), limit)
		if err != nil {
			if errors.Is(err, reporting.ErrSnapshotsDisabled) {
				handleReportingError(w, r, err)
				return
			}
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar snapshots")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar histórico", nil)
			return
		}

		response := make([]SnapshotResponse, 0, len(snapshots))
		for _, s := range snapshots {
			response = append(response, presenter.Snapshot(s))
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"snapshots": response,
		})
	}
}

// GetSnapshot retorna um snapshot com o dashboard completo da época
func GetSnapshot(service reporting.Reporter, presenter Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := router.Param(r, "id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do snapshot não fornecido", nil)
			return
		}

		snapshot, err := service.GetSnapshot(r.Context(), id)
		if err != nil {
			if errors.Is(err, reporting.ErrSnapshotsDisabled) || errors.Is(err, domain.ErrNotFound) {
				handleReportingError(w, r, err)
				return
			}
			log.ForContext(r.Context()).WithError(err).Error("Erro ao buscar snapshot")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar snapshot", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, presenter.Snapshot(snapshot))
	}
}

// parseLimit lê o parâmetro limit; vazio significa sem limite
func parseLimit(w http.ResponseWriter, value string) (int, bool) {
	if value == "" {
		return 0, true
	}

	limit, err := strconv.Atoi(value)
	if err != nil || limit < 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro limit inválido", map[string]any{"limit": value})
		return 0, false
	}
	return limit, true
}
