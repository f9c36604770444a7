package services

import (
	"context"

	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/repositories"
)

type EquipmentCategoryServiceInterface interface {
	List(ctx context.Context, search string) ([]dto.EquipmentCategoryDTO, error)
	Find(ctx context.Context, id uint64) (*dto.EquipmentCategoryDTO, error)
	Create(ctx context.Context, payload dto.CreateEquipmentCategoryDTO) (*dto.EquipmentCategoryDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentCategoryDTO) (*dto.EquipmentCategoryDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type EquipmentCategoryService struct {
	categoryRepo repositories.EquipmentCategoryRepositoryInterface
	logger       *zap.Logger
}

func NewEquipmentCategoryService(
	categoryRepo repositories.EquipmentCategoryRepositoryInterface,
	logger *zap.Logger,
) EquipmentCategoryServiceInterface {
	return &EquipmentCategoryService{categoryRepo: categoryRepo, logger: logger}
}

func (s *EquipmentCategoryService) List(ctx context.Context, search string) ([]dto.EquipmentCategoryDTO, error) {
	return s.categoryRepo.List(ctx, search)
}

func (s *EquipmentCategoryService) Find(ctx context.Context, id uint64) (*dto.EquipmentCategoryDTO, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *EquipmentCategoryService) Create(ctx context.Context, payload dto.CreateEquipmentCategoryDTO) (*dto.EquipmentCategoryDTO, error) {
	id, err := s.categoryRepo.Create(ctx, &entities.EquipmentCategory{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *EquipmentCategoryService) Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentCategoryDTO) (*dto.EquipmentCategoryDTO, error) {
	if err := s.categoryRepo.Update(ctx, id, payload.Name, payload.Description); err != nil {
		return nil, err
	}
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *EquipmentCategoryService) Delete(ctx context.Context, id uint64) error {
	return s.categoryRepo.Delete(ctx, id)
}
