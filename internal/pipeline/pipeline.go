// Package pipeline limpa, classifica e agrega os registros de venda de mesas
package pipeline

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
)

type Config struct {
	Columns    domain.ColumnSet
	Projection domain.ProjectionConfig
}

func DefaultConfig() Config {
	return Config{
		Columns:    domain.DefaultColumnSet(),
		Projection: domain.DefaultProjectionConfig(),
	}
}

// Run executa uma passada completa: normaliza, classifica e agrega.
// Não há resultado parcial: qualquer erro aborta o dashboard inteiro.
func Run(table *domain.RawTable, cfg Config) (*domain.Dashboard, error) {
	if table == nil {
		table = &domain.RawTable{}
	}

	records, err := Normalize(table, cfg.Columns)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, domain.ErrNoRecords
	}

	dashboard := Aggregate(records, cfg.Projection)

	logrus.WithFields(logrus.Fields{
		"raw_rows":       len(table.Rows),
		"records":        dashboard.RecordCount,
		"expected_total": dashboard.ExpectedTotal,
		"missing":        dashboard.MissingCount,
	}).Debug("pipeline: dashboard calculado")

	return dashboard, nil
}
