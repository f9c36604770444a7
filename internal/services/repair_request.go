package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"repair-system/internal/authz"
	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/utils"
)

// allocateAttempts bounds the request-number retry loop. Concurrent creates
// in the same year may propose the same number; the unique index rejects all
// but one and the losers recompute.
const allocateAttempts = 3

type RepairRequestServiceInterface interface {
	List(ctx context.Context, filter utils.RequestFilter) ([]dto.RepairRequestDTO, uint64, error)
	ListMine(ctx context.Context, filter utils.RequestFilter) ([]dto.RepairRequestDTO, uint64, error)
	ListAssignedToMe(ctx context.Context, filter utils.RequestFilter) ([]dto.RepairRequestDTO, uint64, error)
	Find(ctx context.Context, id uint64) (*dto.RepairRequestDTO, error)
	Create(ctx context.Context, payload dto.CreateRepairRequestDTO) (*dto.RepairRequestDTO, error)
	Assign(ctx context.Context, id uint64, payload dto.AssignRepairRequestDTO) (*dto.RepairRequestDTO, error)
	UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateStatusDTO) (*dto.RepairRequestDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateRepairRequestDTO) (*dto.RepairRequestDTO, error)
	ListHistory(ctx context.Context, id uint64) ([]dto.RepairHistoryDTO, error)
}

type RepairRequestService struct {
	txm           repositories.TxManagerInterface
	requestRepo   repositories.RepairRequestRepositoryInterface
	historyRepo   repositories.RepairHistoryRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewRepairRequestService(
	txm repositories.TxManagerInterface,
	requestRepo repositories.RepairRequestRepositoryInterface,
	historyRepo repositories.RepairHistoryRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) RepairRequestServiceInterface {
	return &RepairRequestService{
		txm:           txm,
		requestRepo:   requestRepo,
		historyRepo:   historyRepo,
		userRepo:      userRepo,
		equipmentRepo: equipmentRepo,
		logger:        logger,
	}
}

func (s *RepairRequestService) List(ctx context.Context, filter utils.RequestFilter) ([]dto.RepairRequestDTO, uint64, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	role, hasProfile := utils.GetRoleFromCtx(ctx)
	return s.requestRepo.List(ctx, authz.RequestScope(role, hasProfile, actorID), filter)
}

func (s *RepairRequestService) ListMine(ctx context.Context, filter utils.RequestFilter) ([]dto.RepairRequestDTO, uint64, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	// Own requests regardless of role; this is already inside every scope.
	return s.requestRepo.List(ctx, authz.OwnRequests(actorID), filter)
}

func (s *RepairRequestService) ListAssignedToMe(ctx context.Context, filter utils.RequestFilter) ([]dto.RepairRequestDTO, uint64, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.requestRepo.List(ctx, authz.AssignedRequests(actorID), filter)
}

// loadAccessible fetches the request entity and enforces the actor's scope on
// it. Out-of-scope requests yield Forbidden, not NotFound, because their ids
// are not secret (request numbers are sequential).
func (s *RepairRequestService) loadAccessible(ctx context.Context, id uint64) (*entities.RepairRequest, uint64, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	role, hasProfile := utils.GetRoleFromCtx(ctx)
	if !authz.CanAccessRequest(role, hasProfile, actorID, req) {
		return nil, 0, apperrors.ErrForbidden
	}
	return req, actorID, nil
}

func (s *RepairRequestService) Find(ctx context.Context, id uint64) (*dto.RepairRequestDTO, error) {
	if _, _, err := s.loadAccessible(ctx, id); err != nil {
		return nil, err
	}
	return s.requestRepo.FindDTO(ctx, id)
}

func (s *RepairRequestService) ListHistory(ctx context.Context, id uint64) ([]dto.RepairHistoryDTO, error) {
	if _, _, err := s.loadAccessible(ctx, id); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByRequestID(ctx, id)
}

func (s *RepairRequestService) Create(ctx context.Context, payload dto.CreateRepairRequestDTO) (*dto.RepairRequestDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	exists, err := s.equipmentRepo.Exists(ctx, payload.EquipmentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewValidationError("equipment %d does not exist", payload.EquipmentID)
	}

	priority := entities.Priority(payload.Priority)
	if payload.Priority == "" {
		priority = entities.PriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("unknown priority %q", payload.Priority)
	}

	req := &entities.RepairRequest{
		EquipmentID: payload.EquipmentID,
		RequesterID: actorID,
		Title:       payload.Title,
		Description: payload.Description,
		Priority:    priority,
		Status:      entities.StatusPending,
		RequestDate: time.Now(),
	}

	// Allocate-then-insert under the request_number unique index; on a
	// collision the whole transaction is retried with a fresh number.
	var newID uint64
	for attempt := 1; ; attempt++ {
		err = s.txm.RunInTransaction(ctx, func(tx pgx.Tx) error {
			number, err := s.requestRepo.NextRequestNumberInTx(ctx, tx, req.RequestDate.Year())
			if err != nil {
				return err
			}
			req.RequestNumber = number

			id, err := s.requestRepo.CreateInTx(ctx, tx, req)
			if err != nil {
				return err
			}
			newID = id
			return nil
		})
		if err == nil {
			break
		}
		if repositories.IsUniqueViolation(err) && attempt < allocateAttempts {
			s.logger.Warn("request number collision, retrying",
				zap.String("requestNumber", req.RequestNumber),
				zap.Int("attempt", attempt))
			continue
		}
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("request number allocation lost %d races: %w", allocateAttempts, apperrors.ErrNumberConflict)
		}
		return nil, err
	}

	s.logger.Info("repair request created",
		zap.Uint64("id", newID),
		zap.String("requestNumber", req.RequestNumber),
		zap.Uint64("requester", actorID))

	return s.requestRepo.FindDTO(ctx, newID)
}

func (s *RepairRequestService) Assign(ctx context.Context, id uint64, payload dto.AssignRepairRequestDTO) (*dto.RepairRequestDTO, error) {
	_, actorID, err := s.loadAccessible(ctx, id)
	if err != nil {
		return nil, err
	}

	technician, err := s.userRepo.FindByID(ctx, payload.TechnicianID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("technician %d: %w", payload.TechnicianID, apperrors.ErrNotFound)
		}
		return nil, err
	}

	profile, err := s.userRepo.FindProfileByUserID(ctx, technician.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	if !profile.Role.CanBeAssigned() {
		return nil, apperrors.ErrNotEligible
	}

	err = s.txm.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.requestRepo.FindForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}

		req.AssignedTo = &technician.ID
		req.ApplyStatus(entities.StatusAssigned, time.Now())

		if err := s.requestRepo.UpdateInTx(ctx, tx, req); err != nil {
			return err
		}

		return s.historyRepo.CreateInTx(ctx, tx, &entities.RepairHistory{
			RepairRequestID: req.ID,
			UpdatedBy:       actorID,
			Status:          entities.StatusAssigned,
			Comment:         fmt.Sprintf("Assigned to %s", technician.FullName()),
		})
	})
	if err != nil {
		return nil, err
	}

	return s.requestRepo.FindDTO(ctx, id)
}

func (s *RepairRequestService) UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateStatusDTO) (*dto.RepairRequestDTO, error) {
	_, actorID, err := s.loadAccessible(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus := entities.Status(payload.Status)
	if !newStatus.Valid() {
		return nil, fmt.Errorf("status %q: %w", payload.Status, apperrors.ErrInvalidStatus)
	}

	err = s.txm.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.requestRepo.FindForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}

		req.ApplyStatus(newStatus, time.Now())

		if err := s.requestRepo.UpdateInTx(ctx, tx, req); err != nil {
			return err
		}

		// Explicit status updates are always audited.
		return s.historyRepo.CreateInTx(ctx, tx, &entities.RepairHistory{
			RepairRequestID: req.ID,
			UpdatedBy:       actorID,
			Status:          newStatus,
			Comment:         payload.Comment,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.requestRepo.FindDTO(ctx, id)
}

// Update is the generic patch path. An audit entry is appended only when a
// comment was supplied or status is among the patched fields; remark- or
// cost-only edits leave the trail untouched.
func (s *RepairRequestService) Update(ctx context.Context, id uint64, payload dto.UpdateRepairRequestDTO) (*dto.RepairRequestDTO, error) {
	_, actorID, err := s.loadAccessible(ctx, id)
	if err != nil {
		return nil, err
	}

	var newStatus entities.Status
	if payload.Status.Valid {
		newStatus = entities.Status(payload.Status.String)
		if !newStatus.Valid() {
			return nil, fmt.Errorf("status %q: %w", payload.Status.String, apperrors.ErrInvalidStatus)
		}
	}

	if payload.AssignedTo.Valid {
		profile, err := s.userRepo.FindProfileByUserID(ctx, payload.AssignedTo.Uint64)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrProfileNotFound
			}
			return nil, err
		}
		if !profile.Role.CanBeAssigned() {
			return nil, apperrors.ErrNotEligible
		}
	}

	err = s.txm.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.requestRepo.FindForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if payload.AssignedTo.Valid {
			assignee := payload.AssignedTo.Uint64
			req.AssignedTo = &assignee
		}
		if payload.EstimatedCost.Valid {
			cost := payload.EstimatedCost.Float64
			req.EstimatedCost = &cost
		}
		if payload.ActualCost.Valid {
			cost := payload.ActualCost.Float64
			req.ActualCost = &cost
		}
		if payload.Remarks.Valid {
			req.Remarks = payload.Remarks.String
		}
		if payload.Status.Valid {
			req.ApplyStatus(newStatus, time.Now())
		}

		if err := s.requestRepo.UpdateInTx(ctx, tx, req); err != nil {
			return err
		}

		if payload.Comment.Valid || payload.Status.Valid {
			return s.historyRepo.CreateInTx(ctx, tx, &entities.RepairHistory{
				RepairRequestID: req.ID,
				UpdatedBy:       actorID,
				Status:          req.Status,
				Comment:         payload.Comment.String,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.requestRepo.FindDTO(ctx, id)
}
