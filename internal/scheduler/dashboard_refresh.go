// Package scheduler contém os serviços de agendamento de atualização de dados
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/baile-dashboard-api/internal/config"
	"github.com/vfg2006/baile-dashboard-api/internal/usecases/reporting"
)

const refreshTimeout = 2 * time.Minute

type DashboardRefreshConfig struct {
	CronSchedule string
	Enabled      bool
}

// DashboardRefreshService baixa a planilha periodicamente para manter o
// dashboard em memória atualizado
type DashboardRefreshService struct {
	scheduler           *gocron.Scheduler
	reporter            reporting.Reporter
	config              DashboardRefreshConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewDashboardRefreshService(reporter reporting.Reporter, cfg *config.Config) *DashboardRefreshService {
	refreshConfig := DashboardRefreshConfig{
		CronSchedule: cfg.DashboardRefresh.CronSchedule,
		Enabled:      cfg.DashboardRefresh.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"enabled":       refreshConfig.Enabled,
	}).Info("Configuração do agendador de atualização do dashboard carregada")

	return &DashboardRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		reporter:  reporter,
		config:    refreshConfig,
	}
}

func (s *DashboardRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de atualização do dashboard desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de atualização do dashboard")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RefreshDashboard(ctx); err != nil {
			logrus.WithError(err).Error("Erro na atualização agendada do dashboard")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do dashboard: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de atualização do dashboard")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshDashboard executa uma atualização, ignorando a chamada se outra
// já estiver em andamento
func (s *DashboardRefreshService) RefreshDashboard(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Atualização do dashboard já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	logrus.Info("Iniciando atualização do dashboard")

	dashboard, err := s.reporter.Refresh(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	if err != nil {
		s.lastSyncError = err.Error()
	} else {
		s.lastSyncError = ""
	}
	s.syncMutex.Unlock()

	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"records":        dashboard.RecordCount,
		"expected_total": dashboard.ExpectedTotal,
	}).Info("Atualização do dashboard concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma atualização em background
func (s *DashboardRefreshService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do dashboard já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do dashboard")
	go func() {
		if err := s.RefreshDashboard(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na atualização manual do dashboard")
		}
	}()
	return true
}

// GetStatus retorna o status atual do agendador
func (s *DashboardRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
