package services

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/utils"
)

const recentRequestsLimit = 5

type DashboardServiceInterface interface {
	Stats(ctx context.Context) (*dto.DashboardStatsDTO, error)
}

type DashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	logger        *zap.Logger
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

// Stats produces the role-dependent dashboard. Unlike list scoping, a missing
// profile here is an error: the dashboard has no meaningful fallback shape.
func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.userRepo.FindProfileByUserID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}

	stats := &dto.DashboardStatsDTO{}

	var totalCond, pendingCond, inProgressCond, completedCond, recentCond sq.Sqlizer

	switch profile.Role {
	case entities.RoleUser:
		own := sq.Eq{"r.requester_id": actorID}
		totalCond = own
		pendingCond = sq.And{own, sq.Eq{"r.status": entities.StatusPending}}
		inProgressCond = sq.And{own, sq.Eq{"r.status": []entities.Status{entities.StatusAssigned, entities.StatusInProgress}}}
		completedCond = sq.And{own, sq.Eq{"r.status": entities.StatusCompleted}}
		recentCond = own

	case entities.RoleTechnician:
		mine := sq.Eq{"r.assigned_to": actorID}
		totalCond = mine
		// The pending count is deliberately global: it is the size of the
		// unclaimed queue, not the technician's own backlog.
		pendingCond = sq.Eq{"r.status": entities.StatusPending}
		inProgressCond = sq.And{mine, sq.Eq{"r.status": entities.StatusInProgress}}
		completedCond = sq.And{mine, sq.Eq{"r.status": entities.StatusCompleted}}
		recentCond = sq.Or{mine, sq.Eq{"r.status": entities.StatusPending}}

	case entities.RoleAdmin:
		totalCond = nil
		pendingCond = sq.Eq{"r.status": entities.StatusPending}
		inProgressCond = sq.Eq{"r.status": []entities.Status{entities.StatusAssigned, entities.StatusInProgress}}
		completedCond = sq.Eq{"r.status": entities.StatusCompleted}
		recentCond = nil

	default:
		return nil, apperrors.ErrProfileNotFound
	}

	if stats.TotalRequests, err = s.dashboardRepo.CountRequests(ctx, totalCond); err != nil {
		return nil, err
	}
	if stats.PendingRequests, err = s.dashboardRepo.CountRequests(ctx, pendingCond); err != nil {
		return nil, err
	}
	if stats.InProgressRequests, err = s.dashboardRepo.CountRequests(ctx, inProgressCond); err != nil {
		return nil, err
	}
	if stats.CompletedRequests, err = s.dashboardRepo.CountRequests(ctx, completedCond); err != nil {
		return nil, err
	}

	if stats.TotalEquipment, stats.ActiveEquipment, err = s.equipmentRepo.CountTotalAndActive(ctx); err != nil {
		return nil, err
	}

	if stats.RecentRequests, err = s.dashboardRepo.RecentRequests(ctx, recentCond, recentRequestsLimit); err != nil {
		return nil, err
	}

	return stats, nil
}
