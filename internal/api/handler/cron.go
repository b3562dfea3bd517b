package handler

import (
	"net/http"

	"github.com/vfg2006/baile-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/baile-dashboard-api/pkg/log"
)

const CronJobTypeRefresh = "refresh"

// ManualSyncer é o contrato dos serviços agendados que podem ser disparados pela API
type ManualSyncer interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron disponíveis para execução manual
type CronJobServices struct {
	DashboardRefresh ManualSyncer
}

// RunCronJob dispara manualmente uma cron job
func RunCronJob(services CronJobServices, cronType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch cronType {
		case CronJobTypeRefresh:
			if services.DashboardRefresh == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de atualização do dashboard não disponível", nil)
				return
			}

			started := services.DashboardRefresh.TriggerManualSync()
			log.ForContext(r.Context()).WithField("started", started).Info("Execução manual da cron solicitada")

			message := "Cron job iniciada com sucesso"
			if !started {
				message = "Cron job já está em execução"
			}

			writeJSON(w, r, http.StatusAccepted, map[string]any{
				"message": message,
				"type":    cronType,
				"started": started,
			})

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: refresh", map[string]any{
				"type": cronType,
			})
		}
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.DashboardRefresh != nil {
			status[CronJobTypeRefresh] = services.DashboardRefresh.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
