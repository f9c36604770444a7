package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/utils"
)

const dateLayout = "2006-01-02"

type EquipmentRepositoryInterface interface {
	List(ctx context.Context, filter utils.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error)
	FindByID(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	Exists(ctx context.Context, id uint64) (bool, error)
	Create(ctx context.Context, eq *entities.Equipment) (uint64, error)
	Update(ctx context.Context, eq *entities.Equipment) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) error
	CountTotalAndActive(ctx context.Context) (total uint64, active uint64, err error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func equipmentBaseQuery() sq.SelectBuilder {
	return sq.Select(
		"e.id", "e.equipment_code", "e.name", "e.category_id", "c.name AS category_name",
		"e.description", "e.location", "e.purchase_date", "e.warranty_expiry",
		"e.condition", "e.is_active", "e.created_at", "e.updated_at",
	).
		From("equipments e").
		LeftJoin("equipment_categories c ON c.id = e.category_id").
		PlaceholderFormat(sq.Dollar)
}

func applyEquipmentFilter(b sq.SelectBuilder, filter utils.EquipmentFilter) sq.SelectBuilder {
	if filter.CategoryID != 0 {
		b = b.Where(sq.Eq{"e.category_id": filter.CategoryID})
	}
	if filter.IsActive != nil {
		b = b.Where(sq.Eq{"e.is_active": *filter.IsActive})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"e.equipment_code": pattern},
			sq.ILike{"e.name": pattern},
			sq.ILike{"e.location": pattern},
		})
	}
	return b
}

func (r *EquipmentRepository) List(ctx context.Context, filter utils.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error) {
	countSQL, countArgs, err := applyEquipmentFilter(
		sq.Select("COUNT(*)").From("equipments e").PlaceholderFormat(sq.Dollar),
		filter,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build equipment count query: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, translateStoreErr(err)
	}

	listSQL, listArgs, err := applyEquipmentFilter(equipmentBaseQuery(), filter).
		OrderBy("e.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build equipment list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, translateStoreErr(err)
	}
	defer rows.Close()

	items := make([]dto.EquipmentDTO, 0)
	for rows.Next() {
		item, err := scanEquipmentDTO(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	return items, total, rows.Err()
}

func scanEquipmentDTO(row rowScanner) (*dto.EquipmentDTO, error) {
	var (
		item                          dto.EquipmentDTO
		categoryName, description     *string
		purchaseDate, warrantyExpiry  *time.Time
		createdAt, updatedAt          time.Time
	)
	err := row.Scan(
		&item.ID, &item.EquipmentCode, &item.Name, &item.CategoryID, &categoryName,
		&description, &item.Location, &purchaseDate, &warrantyExpiry,
		&item.Condition, &item.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	if categoryName != nil {
		item.CategoryName = *categoryName
	}
	if description != nil {
		item.Description = *description
	}
	if purchaseDate != nil {
		s := purchaseDate.Format(dateLayout)
		item.PurchaseDate = &s
	}
	if warrantyExpiry != nil {
		s := warrantyExpiry.Format(dateLayout)
		item.WarrantyExpiry = &s
	}
	item.CreatedAt = createdAt.Local().Format(timeLayout)
	item.UpdatedAt = updatedAt.Local().Format(timeLayout)
	return &item, nil
}

func (r *EquipmentRepository) FindByID(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	query, args, err := equipmentBaseQuery().Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build equipment find query: %w", err)
	}
	return scanEquipmentDTO(r.storage.QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM equipments WHERE id = $1)`, id).Scan(&exists)
	return exists, translateStoreErr(err)
}

func (r *EquipmentRepository) Create(ctx context.Context, eq *entities.Equipment) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO equipments
			(equipment_code, name, category_id, description, location, purchase_date, warranty_expiry, condition, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		eq.EquipmentCode, eq.Name, eq.CategoryID, eq.Description, eq.Location,
		eq.PurchaseDate, eq.WarrantyExpiry, eq.Condition, eq.IsActive,
	).Scan(&id)
	if err != nil {
		if IsUniqueViolation(err) {
			return 0, fmt.Errorf("equipment code %q: %w", eq.EquipmentCode, apperrors.ErrAlreadyExists)
		}
		return 0, translateStoreErr(err)
	}
	return id, nil
}

func (r *EquipmentRepository) Update(ctx context.Context, eq *entities.Equipment) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE equipments
		SET equipment_code = $2, name = $3, category_id = $4, description = $5, location = $6,
		    purchase_date = $7, warranty_expiry = $8, condition = $9, is_active = $10, updated_at = NOW()
		WHERE id = $1`,
		eq.ID, eq.EquipmentCode, eq.Name, eq.CategoryID, eq.Description, eq.Location,
		eq.PurchaseDate, eq.WarrantyExpiry, eq.Condition, eq.IsActive,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("equipment code %q: %w", eq.EquipmentCode, apperrors.ErrAlreadyExists)
		}
		return translateStoreErr(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM equipments WHERE id = $1`, id)
	if err != nil {
		return translateStoreErr(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) CountTotalAndActive(ctx context.Context) (uint64, uint64, error) {
	var total, active uint64
	err := r.storage.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active)
		FROM equipments`,
	).Scan(&total, &active)
	return total, active, translateStoreErr(err)
}
