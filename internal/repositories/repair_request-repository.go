package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/utils"
)

const timeLayout = "2006-01-02 15:04:05"

// requestNumberPrefix + 4-digit year + 3-digit zero-padded per-year sequence,
// e.g. REQ2024001.
const (
	requestNumberPrefix = "REQ"
	maxYearSequence     = 999
)

type RepairRequestRepositoryInterface interface {
	List(ctx context.Context, scope sq.Sqlizer, filter utils.RequestFilter) ([]dto.RepairRequestDTO, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.RepairRequest, error)
	FindDTO(ctx context.Context, id uint64) (*dto.RepairRequestDTO, error)
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.RepairRequest, error)
	NextRequestNumberInTx(ctx context.Context, tx pgx.Tx, year int) (string, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, req *entities.RepairRequest) (uint64, error)
	UpdateInTx(ctx context.Context, tx pgx.Tx, req *entities.RepairRequest) error
	IDsByEquipmentInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) ([]uint64, error)
	DeleteByIDsInTx(ctx context.Context, tx pgx.Tx, ids []uint64) error
}

type RepairRequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRepairRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RepairRequestRepositoryInterface {
	return &RepairRequestRepository{storage: storage, logger: logger}
}

var requestSelectColumns = []string{
	"r.id", "r.request_number", "r.equipment_id", "r.title", "r.description",
	"r.priority", "r.status", "r.request_date", "r.assigned_date", "r.completed_date",
	"r.estimated_cost", "r.actual_cost", "r.remarks", "r.created_at", "r.updated_at",
	"e.name AS equipment_name", "e.equipment_code",
	"req.id AS requester_id", "req.username AS requester_username",
	"req.first_name AS requester_first_name", "req.last_name AS requester_last_name",
	"tech.id AS tech_id", "tech.username AS tech_username",
	"tech.first_name AS tech_first_name", "tech.last_name AS tech_last_name",
}

func requestBaseQuery() sq.SelectBuilder {
	return sq.Select(requestSelectColumns...).
		From("repair_requests r").
		LeftJoin("equipments e ON e.id = r.equipment_id").
		Join("users req ON req.id = r.requester_id").
		LeftJoin("users tech ON tech.id = r.assigned_to").
		PlaceholderFormat(sq.Dollar)
}

// applyNarrowing attaches the optional list filters. The role scope has
// already been applied by the caller; these only shrink the result set.
func applyNarrowing(b sq.SelectBuilder, filter utils.RequestFilter) sq.SelectBuilder {
	if filter.Status != "" {
		b = b.Where(sq.Eq{"r.status": filter.Status})
	}
	if filter.Priority != "" {
		b = b.Where(sq.Eq{"r.priority": filter.Priority})
	}
	if filter.EquipmentID != 0 {
		b = b.Where(sq.Eq{"r.equipment_id": filter.EquipmentID})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"r.request_number": pattern},
			sq.ILike{"r.title": pattern},
			sq.ILike{"r.description": pattern},
		})
	}
	return b
}

func (r *RepairRequestRepository) List(ctx context.Context, scope sq.Sqlizer, filter utils.RequestFilter) ([]dto.RepairRequestDTO, uint64, error) {
	countBuilder := sq.Select("COUNT(*)").
		From("repair_requests r").
		PlaceholderFormat(sq.Dollar)
	if scope != nil {
		countBuilder = countBuilder.Where(scope)
	}
	countBuilder = applyNarrowing(countBuilder, filter)

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, translateStoreErr(err)
	}

	listBuilder := requestBaseQuery()
	if scope != nil {
		listBuilder = listBuilder.Where(scope)
	}
	listBuilder = applyNarrowing(listBuilder, filter).
		OrderBy("r.request_date DESC").
		Limit(filter.Limit).
		Offset(filter.Offset)

	listSQL, listArgs, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, translateStoreErr(err)
	}
	defer rows.Close()

	requests := make([]dto.RepairRequestDTO, 0)
	for rows.Next() {
		item, err := scanRequestDTO(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *item)
	}
	return requests, total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequestDTO(row rowScanner) (*dto.RepairRequestDTO, error) {
	var (
		item                             dto.RepairRequestDTO
		equipmentName, equipmentCode     *string
		requesterFirst, requesterLast    string
		techID                           *uint64
		techUsername, techFirst, techLast *string
		estimatedCost, actualCost        *float64
		remarks                          *string
		requestDate, createdAt, updatedAt time.Time
		assignedDate, completedDate      *time.Time
	)

	err := row.Scan(
		&item.ID, &item.RequestNumber, &item.EquipmentID, &item.Title, &item.Description,
		&item.Priority, &item.Status, &requestDate, &assignedDate, &completedDate,
		&estimatedCost, &actualCost, &remarks, &createdAt, &updatedAt,
		&equipmentName, &equipmentCode,
		&item.Requester.ID, &item.Requester.Username, &requesterFirst, &requesterLast,
		&techID, &techUsername, &techFirst, &techLast,
	)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	if equipmentName != nil {
		item.EquipmentName = *equipmentName
	}
	if equipmentCode != nil {
		item.EquipmentCode = *equipmentCode
	}
	item.Requester.FullName = (&entities.User{
		Username:  item.Requester.Username,
		FirstName: requesterFirst,
		LastName:  requesterLast,
	}).FullName()

	if techID != nil {
		tech := dto.ShortUserDTO{ID: *techID}
		if techUsername != nil {
			tech.Username = *techUsername
		}
		var first, last string
		if techFirst != nil {
			first = *techFirst
		}
		if techLast != nil {
			last = *techLast
		}
		tech.FullName = (&entities.User{Username: tech.Username, FirstName: first, LastName: last}).FullName()
		item.AssignedTo = &tech
	}

	item.EstimatedCost = estimatedCost
	item.ActualCost = actualCost
	if remarks != nil {
		item.Remarks = *remarks
	}
	item.RequestDate = requestDate.Local().Format(timeLayout)
	item.CreatedAt = createdAt.Local().Format(timeLayout)
	item.UpdatedAt = updatedAt.Local().Format(timeLayout)
	if assignedDate != nil {
		s := assignedDate.Local().Format(timeLayout)
		item.AssignedDate = &s
	}
	if completedDate != nil {
		s := completedDate.Local().Format(timeLayout)
		item.CompletedDate = &s
	}

	return &item, nil
}

func (r *RepairRequestRepository) FindDTO(ctx context.Context, id uint64) (*dto.RepairRequestDTO, error) {
	query, args, err := requestBaseQuery().Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find query: %w", err)
	}
	return scanRequestDTO(r.storage.QueryRow(ctx, query, args...))
}

const requestEntityFields = `id, request_number, equipment_id, requester_id, title, description,
		priority, status, assigned_to, request_date, assigned_date, completed_date,
		estimated_cost, actual_cost, COALESCE(remarks, ''), created_at, updated_at`

func scanRequestEntity(row pgx.Row) (*entities.RepairRequest, error) {
	var req entities.RepairRequest
	err := row.Scan(
		&req.ID, &req.RequestNumber, &req.EquipmentID, &req.RequesterID, &req.Title, &req.Description,
		&req.Priority, &req.Status, &req.AssignedTo, &req.RequestDate, &req.AssignedDate, &req.CompletedDate,
		&req.EstimatedCost, &req.ActualCost, &req.Remarks, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return &req, nil
}

func findRequestEntity(ctx context.Context, q querier, id uint64, lock bool) (*entities.RepairRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM repair_requests WHERE id = $1`, requestEntityFields)
	if lock {
		query += ` FOR UPDATE`
	}
	return scanRequestEntity(q.QueryRow(ctx, query, id))
}

func (r *RepairRequestRepository) FindByID(ctx context.Context, id uint64) (*entities.RepairRequest, error) {
	return findRequestEntity(ctx, r.storage, id, false)
}

// FindForUpdateInTx locks the row for the remainder of the transaction so the
// status write and audit append happen against a stable snapshot.
func (r *RepairRequestRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.RepairRequest, error) {
	return findRequestEntity(ctx, tx, id, true)
}

// NextRequestNumberInTx proposes the next number for the year. Uniqueness is
// not guaranteed here: the unique index on request_number is the authority,
// and the create path retries on collision.
func (r *RepairRequestRepository) NextRequestNumberInTx(ctx context.Context, tx pgx.Tx, year int) (string, error) {
	prefix := fmt.Sprintf("%s%d", requestNumberPrefix, year)

	var last *string
	err := tx.QueryRow(ctx, `
		SELECT MAX(request_number) FROM repair_requests
		WHERE request_number LIKE $1`,
		prefix+"%",
	).Scan(&last)
	if err != nil {
		return "", translateStoreErr(err)
	}

	next := 1
	if last != nil && len(*last) > 3 {
		seq, err := strconv.Atoi((*last)[len(*last)-3:])
		if err != nil {
			return "", fmt.Errorf("malformed request number %q: %w", *last, err)
		}
		next = seq + 1
	}
	if next > maxYearSequence {
		return "", apperrors.ErrSequenceExhausted
	}

	return fmt.Sprintf("%s%03d", prefix, next), nil
}

func (r *RepairRequestRepository) CreateInTx(ctx context.Context, tx pgx.Tx, req *entities.RepairRequest) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO repair_requests
			(request_number, equipment_id, requester_id, title, description, priority, status, request_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		req.RequestNumber, req.EquipmentID, req.RequesterID, req.Title, req.Description,
		req.Priority, req.Status, req.RequestDate,
	).Scan(&id)
	if err != nil {
		// Unique violations bubble up untranslated so the allocator can retry.
		if IsUniqueViolation(err) {
			return 0, err
		}
		return 0, translateStoreErr(err)
	}
	return id, nil
}

// UpdateInTx persists the whole mutable portion of the row. request_number,
// equipment_id, requester_id and request_date are immutable after creation
// and deliberately absent from the SET list.
func (r *RepairRequestRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, req *entities.RepairRequest) error {
	tag, err := tx.Exec(ctx, `
		UPDATE repair_requests
		SET title = $2, description = $3, priority = $4, status = $5,
		    assigned_to = $6, assigned_date = $7, completed_date = $8,
		    estimated_cost = $9, actual_cost = $10, remarks = $11, updated_at = NOW()
		WHERE id = $1`,
		req.ID, req.Title, req.Description, req.Priority, req.Status,
		req.AssignedTo, req.AssignedDate, req.CompletedDate,
		req.EstimatedCost, req.ActualCost, req.Remarks,
	)
	if err != nil {
		return translateStoreErr(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RepairRequestRepository) IDsByEquipmentInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) ([]uint64, error) {
	rows, err := tx.Query(ctx, `SELECT id FROM repair_requests WHERE equipment_id = $1`, equipmentID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *RepairRequestRepository) DeleteByIDsInTx(ctx context.Context, tx pgx.Tx, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sq.Delete("repair_requests").
		Where(sq.Eq{"id": ids}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}
	_, err = tx.Exec(ctx, query, args...)
	return translateStoreErr(err)
}
