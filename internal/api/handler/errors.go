package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
	"github.com/vfg2006/baile-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/baile-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/baile-dashboard-api/pkg/log"
)

// Mensagem exibida quando a planilha não pode ser carregada
const loadFailureMessage = "Não foi possível carregar os dados da planilha. Tente novamente em instantes."

// handleReportingError traduz os erros do dashboard para os códigos da API
func handleReportingError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	var schemaErr *domain.SchemaError
	var acquisitionErr *domain.AcquisitionError

	switch {
	case errors.As(err, &schemaErr):
		logger.Error("Planilha sem as colunas obrigatórias")
		apiErrors.WriteError(w, apiErrors.ErrSourceSchema, "A planilha não possui as colunas obrigatórias", map[string]any{
			"missing_columns": schemaErr.Missing,
		})

	case errors.As(err, &acquisitionErr):
		logger.Error("Erro ao carregar a planilha")
		apiErrors.WriteError(w, apiErrors.ErrSourceAcquisition, loadFailureMessage, map[string]any{
			"source": acquisitionErr.Source,
		})

	case errors.Is(err, domain.ErrNoRecords):
		logger.Warn("Planilha sem registros")
		apiErrors.WriteError(w, apiErrors.ErrSourceEmpty, "A planilha não possui mesas lançadas", nil)

	case errors.Is(err, reporting.ErrSnapshotsDisabled):
		apiErrors.WriteError(w, apiErrors.ErrFeatureDisabled, "Histórico de snapshots desabilitado", nil)

	case errors.Is(err, domain.ErrNotFound):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Snapshot não encontrado", nil)

	default:
		logger.Error("Erro inesperado no dashboard")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, loadFailureMessage, nil)
	}
}
