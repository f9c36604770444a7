package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	apperrors "repair-system/pkg/errors"
)

type EquipmentCategoryRepositoryInterface interface {
	List(ctx context.Context, search string) ([]dto.EquipmentCategoryDTO, error)
	FindByID(ctx context.Context, id uint64) (*dto.EquipmentCategoryDTO, error)
	Create(ctx context.Context, category *entities.EquipmentCategory) (uint64, error)
	Update(ctx context.Context, id uint64, name, description *string) error
	Delete(ctx context.Context, id uint64) error
}

type EquipmentCategoryRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentCategoryRepository(storage *pgxpool.Pool) EquipmentCategoryRepositoryInterface {
	return &EquipmentCategoryRepository{storage: storage}
}

const categorySelect = `
	SELECT c.id, c.name, COALESCE(c.description, ''),
	       (SELECT COUNT(*) FROM equipments e WHERE e.category_id = c.id AND e.is_active) AS equipment_count,
	       c.created_at, c.updated_at
	FROM equipment_categories c`

func (r *EquipmentCategoryRepository) List(ctx context.Context, search string) ([]dto.EquipmentCategoryDTO, error) {
	query := categorySelect
	args := []any{}
	if search != "" {
		query += ` WHERE c.name ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY c.name`

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	defer rows.Close()

	categories := make([]dto.EquipmentCategoryDTO, 0)
	for rows.Next() {
		item, err := scanCategoryDTO(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *item)
	}
	return categories, rows.Err()
}

func scanCategoryDTO(row rowScanner) (*dto.EquipmentCategoryDTO, error) {
	var item dto.EquipmentCategoryDTO
	var createdAt, updatedAt time.Time
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.EquipmentCount, &createdAt, &updatedAt)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	item.CreatedAt = createdAt.Local().Format(timeLayout)
	item.UpdatedAt = updatedAt.Local().Format(timeLayout)
	return &item, nil
}

func (r *EquipmentCategoryRepository) FindByID(ctx context.Context, id uint64) (*dto.EquipmentCategoryDTO, error) {
	return scanCategoryDTO(r.storage.QueryRow(ctx, categorySelect+` WHERE c.id = $1`, id))
}

func (r *EquipmentCategoryRepository) Create(ctx context.Context, category *entities.EquipmentCategory) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO equipment_categories (name, description)
		VALUES ($1, $2)
		RETURNING id`,
		category.Name, category.Description,
	).Scan(&id)
	if err != nil {
		if IsUniqueViolation(err) {
			return 0, fmt.Errorf("category %q: %w", category.Name, apperrors.ErrAlreadyExists)
		}
		return 0, translateStoreErr(err)
	}
	return id, nil
}

func (r *EquipmentCategoryRepository) Update(ctx context.Context, id uint64, name, description *string) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE equipment_categories
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    updated_at = NOW()
		WHERE id = $1`,
		id, name, description,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return apperrors.ErrAlreadyExists
		}
		return translateStoreErr(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentCategoryRepository) Delete(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM equipment_categories WHERE id = $1`, id)
	if err != nil {
		return translateStoreErr(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
