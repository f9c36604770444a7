package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"repair-system/internal/dto"
)

type DashboardRepositoryInterface interface {
	CountRequests(ctx context.Context, condition sq.Sqlizer) (uint64, error)
	RecentRequests(ctx context.Context, condition sq.Sqlizer, limit uint64) ([]dto.RepairRequestDTO, error)
}

// DashboardRepository answers count and recent-list queries under an optional
// security condition built by the service from the actor's role. A nil
// condition means unrestricted (admin).
type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

func applyCondition(b sq.SelectBuilder, condition sq.Sqlizer) sq.SelectBuilder {
	if condition != nil {
		return b.Where(condition)
	}
	return b
}

func (r *DashboardRepository) CountRequests(ctx context.Context, condition sq.Sqlizer) (uint64, error) {
	builder := applyCondition(
		sq.Select("COUNT(*)").From("repair_requests r").PlaceholderFormat(sq.Dollar),
		condition,
	)
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build dashboard count query: %w", err)
	}

	var count uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, translateStoreErr(err)
	}
	return count, nil
}

func (r *DashboardRepository) RecentRequests(ctx context.Context, condition sq.Sqlizer, limit uint64) ([]dto.RepairRequestDTO, error) {
	builder := applyCondition(requestBaseQuery(), condition).
		OrderBy("r.created_at DESC").
		Limit(limit)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recent requests query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	defer rows.Close()

	requests := make([]dto.RepairRequestDTO, 0)
	for rows.Next() {
		item, err := scanRequestDTO(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *item)
	}
	return requests, rows.Err()
}
