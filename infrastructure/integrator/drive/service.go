package drive

import (
	"context"

	"github.com/vfg2006/baile-dashboard-api/infrastructure/integrator/drive/driveclient"
	"github.com/vfg2006/baile-dashboard-api/infrastructure/integrator/drive/spreadsheet"
	"github.com/vfg2006/baile-dashboard-api/internal/config"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
	"github.com/vfg2006/baile-dashboard-api/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// SpreadsheetIntegrator obtém a tabela bruta da planilha de vendas de mesas
type SpreadsheetIntegrator interface {
	LoadTable(ctx context.Context) (*domain.RawTable, error)
}

type DriveService struct {
	cfg    *config.Config
	Client driveclient.Client
}

func New(cfg *config.Config, client driveclient.Client) SpreadsheetIntegrator {
	return &DriveService{
		cfg:    cfg,
		Client: client,
	}
}

// LoadTable baixa e lê a planilha em uma única tentativa.
// Qualquer falha é devolvida como *domain.AcquisitionError.
func (s *DriveService) LoadTable(ctx context.Context) (*domain.RawTable, error) {
	source := s.cfg.Source
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"source_kind": source.Kind,
		"sheet":       source.Sheet,
	})

	data, err := s.Client.Download(ctx, source.Reference())
	if err != nil {
		logger.WithError(err).Error("Erro ao baixar a planilha")
		return nil, domain.NewAcquisitionError(source.Kind, err)
	}

	table, err := spreadsheet.Parse(data, spreadsheet.Options{
		Sheet:       source.Sheet,
		HeaderRow:   source.HeaderRow,
		DateColumns: []string{s.cfg.Columns.ReceiptDate},
	})
	if err != nil {
		logger.WithError(err).Error("Erro ao ler a planilha")
		return nil, domain.NewAcquisitionError(source.Kind, err)
	}

	logger.Infof("Planilha carregada: %d bytes, %d linhas", len(data), len(table.Rows))

	return table, nil
}
