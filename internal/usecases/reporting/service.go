package reporting

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/baile-dashboard-api/infrastructure/integrator/drive"
	"github.com/vfg2006/baile-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
	"github.com/vfg2006/baile-dashboard-api/internal/pipeline"
	"github.com/vfg2006/baile-dashboard-api/pkg/log"
	"github.com/vfg2006/baile-dashboard-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

type Reporter interface {
	GetDashboard(ctx context.Context) (*domain.Dashboard, error)
	GetRecords(ctx context.Context, classification *domain.Classification) ([]domain.SalesRecord, error)
	Refresh(ctx context.Context) (*domain.Dashboard, error)
	Invalidate()
	ListSnapshots(ctx context.Context, limit int) ([]*domain.DashboardSnapshot, error)
	GetSnapshot(ctx context.Context, id string) (*domain.DashboardSnapshot, error)
}

var ErrSnapshotsDisabled = errors.New("histórico de snapshots desabilitado")

// DashboardService mantém a última planilha carregada em memória até ser
// invalidada explicitamente
type DashboardService struct {
	cfg          pipeline.Config
	source       drive.SpreadsheetIntegrator
	snapshotRepo repository.DashboardSnapshotRepository
	now          func() time.Time

	mu        sync.Mutex
	dashboard *domain.Dashboard
}

// NewDashboardService cria o serviço. snapshotRepo pode ser nil quando o
// histórico estiver desabilitado.
func NewDashboardService(
	cfg pipeline.Config,
	source drive.SpreadsheetIntegrator,
	snapshotRepo repository.DashboardSnapshotRepository,
) Reporter {
	return &DashboardService{
		cfg:          cfg,
		source:       source,
		snapshotRepo: snapshotRepo,
		now:          time.Now,
	}
}

// GetDashboard devolve o dashboard em memória ou baixa a planilha e recalcula.
// Requisições simultâneas aguardam o mesmo carregamento.
func (s *DashboardService) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dashboard != nil {
		return s.dashboard, nil
	}

	dashboard, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	s.dashboard = dashboard
	return dashboard, nil
}

func (s *DashboardService) load(ctx context.Context) (*domain.Dashboard, error) {
	logger := log.ForContext(ctx)
	start := s.now()

	table, err := s.source.LoadTable(ctx)
	if err != nil {
		return nil, err
	}

	dashboard, err := pipeline.Run(table, s.cfg)
	if err != nil {
		logger.WithError(err).Error("Erro ao processar a planilha")
		return nil, err
	}
	dashboard.UpdatedAt = s.now()

	logger.WithFields(log.Fields{
		"records":        dashboard.RecordCount,
		"expected_total": dashboard.ExpectedTotal,
		"duration_ms":    dashboard.UpdatedAt.Sub(start).Milliseconds(),
	}).Info("Dashboard recalculado")

	return dashboard, nil
}

func (s *DashboardService) GetRecords(ctx context.Context, classification *domain.Classification) ([]domain.SalesRecord, error) {
	dashboard, err := s.GetDashboard(ctx)
	if err != nil {
		return nil, err
	}

	return FilterRecords(dashboard.Records, classification), nil
}

// reload recalcula o dashboard e só substitui o atual quando o carregamento dá certo
func (s *DashboardService) reload(ctx context.Context) (*domain.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dashboard, err := s.load(ctx)
	if err != nil {
		if s.dashboard != nil {
			log.ForContext(ctx).WithError(err).Warn("Falha ao atualizar; mantendo o dashboard anterior")
		}
		return nil, err
	}

	s.dashboard = dashboard
	return dashboard, nil
}

// Invalidate descarta a planilha em memória; a próxima leitura baixa novamente
func (s *DashboardService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dashboard = nil
}

// Refresh força um novo download, recalcula e registra um snapshot quando
// o histórico estiver habilitado. Se o download falhar o dashboard anterior
// continua em memória.
func (s *DashboardService) Refresh(ctx context.Context) (*domain.Dashboard, error) {
	dashboard, err := s.reload(ctx)
	if err != nil {
		return nil, err
	}

	if s.snapshotRepo == nil {
		return dashboard, nil
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id do snapshot")
	}

	snapshot := domain.NewDashboardSnapshot(id, dashboard)
	if err := s.snapshotRepo.Save(ctx, snapshot); err != nil {
		// o dashboard já está em memória, só o histórico fica sem o registro
		log.ForContext(ctx).WithError(err).Error("Erro ao salvar snapshot do dashboard")
		return dashboard, nil
	}

	return dashboard, nil
}

func (s *DashboardService) ListSnapshots(ctx context.Context, limit int) ([]*domain.DashboardSnapshot, error) {
	if s.snapshotRepo == nil {
		return nil, ErrSnapshotsDisabled
	}

	snapshots, err := s.snapshotRepo.List(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar snapshots")
	}
	return snapshots, nil
}

func (s *DashboardService) GetSnapshot(ctx context.Context, id string) (*domain.DashboardSnapshot, error) {
	if s.snapshotRepo == nil {
		return nil, ErrSnapshotsDisabled
	}

	return s.snapshotRepo.GetByID(ctx, id)
}

// FilterRecords devolve os registros da classificação informada, ou todos
// quando classification for nil
func FilterRecords(records []domain.SalesRecord, classification *domain.Classification) []domain.SalesRecord {
	filtered := make([]domain.SalesRecord, 0, len(records))
	for _, r := range records {
		if classification == nil || r.Classification == *classification {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
