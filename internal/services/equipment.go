package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/utils"
)

type EquipmentServiceInterface interface {
	List(ctx context.Context, filter utils.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error)
	ListAvailable(ctx context.Context) ([]dto.EquipmentDTO, error)
	Find(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	txm           repositories.TxManagerInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	requestRepo   repositories.RepairRequestRepositoryInterface
	historyRepo   repositories.RepairHistoryRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	txm repositories.TxManagerInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	requestRepo repositories.RepairRequestRepositoryInterface,
	historyRepo repositories.RepairHistoryRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		txm:           txm,
		equipmentRepo: equipmentRepo,
		requestRepo:   requestRepo,
		historyRepo:   historyRepo,
		logger:        logger,
	}
}

func (s *EquipmentService) List(ctx context.Context, filter utils.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error) {
	return s.equipmentRepo.List(ctx, filter)
}

func (s *EquipmentService) ListAvailable(ctx context.Context) ([]dto.EquipmentDTO, error) {
	active := true
	items, _, err := s.equipmentRepo.List(ctx, utils.EquipmentFilter{IsActive: &active, Limit: 100})
	return items, err
}

func (s *EquipmentService) Find(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	return s.equipmentRepo.FindByID(ctx, id)
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date %q, expected YYYY-MM-DD", *value)
	}
	return &t, nil
}

func (s *EquipmentService) Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	purchaseDate, err := parseDate(payload.PurchaseDate)
	if err != nil {
		return nil, err
	}
	warrantyExpiry, err := parseDate(payload.WarrantyExpiry)
	if err != nil {
		return nil, err
	}

	condition := entities.Condition(payload.Condition)
	if payload.Condition == "" {
		condition = entities.ConditionGood
	}
	if !condition.Valid() {
		return nil, apperrors.NewValidationError("unknown condition %q", payload.Condition)
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	eq := &entities.Equipment{
		EquipmentCode:  payload.EquipmentCode,
		Name:           payload.Name,
		CategoryID:     payload.CategoryID,
		Description:    payload.Description,
		Location:       payload.Location,
		PurchaseDate:   purchaseDate,
		WarrantyExpiry: warrantyExpiry,
		Condition:      condition,
		IsActive:       isActive,
	}

	id, err := s.equipmentRepo.Create(ctx, eq)
	if err != nil {
		return nil, err
	}
	return s.equipmentRepo.FindByID(ctx, id)
}

func (s *EquipmentService) Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	existing, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	eq := &entities.Equipment{
		ID:            id,
		EquipmentCode: existing.EquipmentCode,
		Name:          existing.Name,
		CategoryID:    existing.CategoryID,
		Description:   existing.Description,
		Location:      existing.Location,
		Condition:     entities.Condition(existing.Condition),
		IsActive:      existing.IsActive,
	}
	if eq.PurchaseDate, err = parseDate(existing.PurchaseDate); err != nil {
		return nil, err
	}
	if eq.WarrantyExpiry, err = parseDate(existing.WarrantyExpiry); err != nil {
		return nil, err
	}

	if payload.EquipmentCode != nil {
		eq.EquipmentCode = *payload.EquipmentCode
	}
	if payload.Name != nil {
		eq.Name = *payload.Name
	}
	if payload.CategoryID != nil {
		eq.CategoryID = payload.CategoryID
	}
	if payload.Description != nil {
		eq.Description = *payload.Description
	}
	if payload.Location != nil {
		eq.Location = *payload.Location
	}
	if payload.PurchaseDate != nil {
		if eq.PurchaseDate, err = parseDate(payload.PurchaseDate); err != nil {
			return nil, err
		}
	}
	if payload.WarrantyExpiry != nil {
		if eq.WarrantyExpiry, err = parseDate(payload.WarrantyExpiry); err != nil {
			return nil, err
		}
	}
	if payload.Condition != nil {
		condition := entities.Condition(*payload.Condition)
		if !condition.Valid() {
			return nil, apperrors.NewValidationError("unknown condition %q", *payload.Condition)
		}
		eq.Condition = condition
	}
	if payload.IsActive != nil {
		eq.IsActive = *payload.IsActive
	}

	if err := s.equipmentRepo.Update(ctx, eq); err != nil {
		return nil, err
	}
	return s.equipmentRepo.FindByID(ctx, id)
}

// Delete destroys the equipment together with its repair requests and their
// audit histories in one transaction. This is the only destruction path for
// requests; the dependent rows are enumerated explicitly rather than left to
// storage-level cascade configuration, so the deletion stays auditable.
func (s *EquipmentService) Delete(ctx context.Context, id uint64) error {
	return s.txm.RunInTransaction(ctx, func(tx pgx.Tx) error {
		requestIDs, err := s.requestRepo.IDsByEquipmentInTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := s.historyRepo.DeleteByRequestIDsInTx(ctx, tx, requestIDs); err != nil {
			return err
		}
		if err := s.requestRepo.DeleteByIDsInTx(ctx, tx, requestIDs); err != nil {
			return err
		}
		if err := s.equipmentRepo.DeleteInTx(ctx, tx, id); err != nil {
			return err
		}

		s.logger.Info("equipment deleted with dependents",
			zap.Uint64("equipmentID", id),
			zap.Int("requestCount", len(requestIDs)))
		return nil
	})
}
