package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/baile-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/baile-dashboard-api/infrastructure/integrator/drive"
	"github.com/vfg2006/baile-dashboard-api/infrastructure/integrator/drive/driveclient"
	"github.com/vfg2006/baile-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/baile-dashboard-api/internal/api"
	"github.com/vfg2006/baile-dashboard-api/internal/config"
	"github.com/vfg2006/baile-dashboard-api/internal/pipeline"
	"github.com/vfg2006/baile-dashboard-api/internal/scheduler"
	"github.com/vfg2006/baile-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/baile-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/baile-dashboard-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	projection, err := cfg.ProjectionConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	driveClient, err := driveclient.NewClient(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao criar cliente da planilha")
	}
	spreadsheetIntegrator := drive.New(cfg, driveClient)

	var snapshotRepo repository.DashboardSnapshotRepository
	if cfg.Snapshot.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		snapshotRepo = repository.NewDashboardSnapshotRepository(pgConn)
	} else {
		logrus.Info("Histórico de snapshots desabilitado, PostgreSQL não será utilizado")
	}

	reporter := reporting.NewDashboardService(
		pipeline.Config{
			Columns:    cfg.ColumnSet(),
			Projection: projection,
		},
		spreadsheetIntegrator,
		snapshotRepo,
	)

	authenticator := authenticating.NewService(cfg)

	refreshService := scheduler.NewDashboardRefreshService(reporter, cfg)
	if err := refreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização do dashboard")
	}

	server, err := api.New(cfg, reporter, authenticator, refreshService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
