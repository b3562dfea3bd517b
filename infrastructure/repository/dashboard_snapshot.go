// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/baile-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
)

const (
	dashboardSnapshotTable = "dashboard_snapshots"
	defaultSnapshotLimit   = 20
	maxSnapshotLimit       = 500
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var snapshotColumns = []string{
	"id",
	"expected_total",
	"record_count",
	"received_total",
	"projection",
	"balance_due",
	"completion_pct",
	"sponsorship_count",
	"projection_mode",
	"created_at",
}

//go:generate mockgen -source=dashboard_snapshot.go -destination=mocks/dashboard_snapshot.go -package=mocks

type DashboardSnapshotRepository interface {
	Save(ctx context.Context, snapshot *domain.DashboardSnapshot) error
	List(ctx context.Context, limit int) ([]*domain.DashboardSnapshot, error)
	GetByID(ctx context.Context, id string) (*domain.DashboardSnapshot, error)
}

type dashboardSnapshotRepository struct {
	conn postgres.Queryer
}

func NewDashboardSnapshotRepository(conn postgres.Queryer) DashboardSnapshotRepository {
	return &dashboardSnapshotRepository{
		conn: conn,
	}
}

func (r *dashboardSnapshotRepository) Save(ctx context.Context, snapshot *domain.DashboardSnapshot) error {
	query, args, err := buildInsertSnapshotQuery(snapshot)
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar snapshot do dashboard: %w", err)
	}

	return nil
}

// List devolve os snapshots mais recentes primeiro, sem o payload completo
func (r *dashboardSnapshotRepository) List(ctx context.Context, limit int) ([]*domain.DashboardSnapshot, error) {
	query, args, err := buildListSnapshotsQuery(limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.DashboardSnapshot, 0)
	for rows.Next() {
		snapshot := &domain.DashboardSnapshot{}
		if err := rows.Scan(snapshotFields(snapshot)...); err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func (r *dashboardSnapshotRepository) GetByID(ctx context.Context, id string) (*domain.DashboardSnapshot, error) {
	query, args, err := squirrel.
		Select(append(snapshotColumns, "payload")...).
		From(dashboardSnapshotTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	snapshot := &domain.DashboardSnapshot{}
	var payload []byte

	row := r.conn.QueryRow(ctx, query, args...)
	if err := row.Scan(append(snapshotFields(snapshot), &payload)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	if len(payload) > 0 {
		snapshot.Payload = &domain.Dashboard{}
		if err := json.Unmarshal(payload, snapshot.Payload); err != nil {
			return nil, fmt.Errorf("erro ao decodificar payload do snapshot: %w", err)
		}
	}

	return snapshot, nil
}

func buildInsertSnapshotQuery(snapshot *domain.DashboardSnapshot) (string, []interface{}, error) {
	var payload []byte
	if snapshot.Payload != nil {
		encoded, err := json.Marshal(snapshot.Payload)
		if err != nil {
			return "", nil, fmt.Errorf("erro ao codificar payload do snapshot: %w", err)
		}
		payload = encoded
	}

	query, args, err := squirrel.StatementBuilder.
		Insert(dashboardSnapshotTable).
		Columns(append(snapshotColumns, "payload")...).
		Values(
			snapshot.ID,
			snapshot.ExpectedTotal,
			snapshot.RecordCount,
			snapshot.ReceivedTotal,
			snapshot.Projection,
			snapshot.BalanceDue,
			snapshot.CompletionPct,
			snapshot.SponsorshipCount,
			string(snapshot.ProjectionMode),
			snapshot.CreatedAt,
			payload,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return query, args, nil
}

func buildListSnapshotsQuery(limit int) (string, []interface{}, error) {
	if limit <= 0 {
		limit = defaultSnapshotLimit
	}
	if limit > maxSnapshotLimit {
		limit = maxSnapshotLimit
	}

	query, args, err := squirrel.
		Select(snapshotColumns...).
		From(dashboardSnapshotTable).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return query, args, nil
}

func snapshotFields(s *domain.DashboardSnapshot) []interface{} {
	return []interface{}{
		&s.ID,
		&s.ExpectedTotal,
		&s.RecordCount,
		&s.ReceivedTotal,
		&s.Projection,
		&s.BalanceDue,
		&s.CompletionPct,
		&s.SponsorshipCount,
		&s.ProjectionMode,
		&s.CreatedAt,
	}
}
