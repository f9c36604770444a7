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
)

type RepairHistoryRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.RepairHistory) error
	ListByRequestID(ctx context.Context, requestID uint64) ([]dto.RepairHistoryDTO, error)
	DeleteByRequestIDsInTx(ctx context.Context, tx pgx.Tx, requestIDs []uint64) error
}

// RepairHistoryRepository is append-only: entries are written inside the same
// transaction as the status change they record and never updated afterwards.
type RepairHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewRepairHistoryRepository(storage *pgxpool.Pool) RepairHistoryRepositoryInterface {
	return &RepairHistoryRepository{storage: storage}
}

func (r *RepairHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.RepairHistory) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO repair_histories (repair_request_id, updated_by, status, comment)
		VALUES ($1, $2, $3, $4)`,
		entry.RepairRequestID, entry.UpdatedBy, entry.Status, entry.Comment,
	)
	return translateStoreErr(err)
}

func (r *RepairHistoryRepository) ListByRequestID(ctx context.Context, requestID uint64) ([]dto.RepairHistoryDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT h.id, h.repair_request_id, h.updated_by, h.status, COALESCE(h.comment, ''), h.created_at,
		       u.username, u.first_name, u.last_name
		FROM repair_histories h
		LEFT JOIN users u ON u.id = h.updated_by
		WHERE h.repair_request_id = $1
		ORDER BY h.created_at DESC, h.id DESC`,
		requestID,
	)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	defer rows.Close()

	entries := make([]dto.RepairHistoryDTO, 0)
	for rows.Next() {
		var (
			entry                 dto.RepairHistoryDTO
			createdAt             time.Time
			username, first, last *string
		)
		if err := rows.Scan(
			&entry.ID, &entry.RepairRequestID, &entry.UpdatedBy, &entry.Status, &entry.Comment, &createdAt,
			&username, &first, &last,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entry.CreatedAt = createdAt.Local().Format(timeLayout)
		if username != nil {
			var f, l string
			if first != nil {
				f = *first
			}
			if last != nil {
				l = *last
			}
			entry.UpdatedByName = (&entities.User{Username: *username, FirstName: f, LastName: l}).FullName()
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteByRequestIDsInTx is the cascade path used only when the owning
// equipment (and with it the requests) is destroyed.
func (r *RepairHistoryRepository) DeleteByRequestIDsInTx(ctx context.Context, tx pgx.Tx, requestIDs []uint64) error {
	if len(requestIDs) == 0 {
		return nil
	}
	query, args, err := sq.Delete("repair_histories").
		Where(sq.Eq{"repair_request_id": requestIDs}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build history delete query: %w", err)
	}
	_, err = tx.Exec(ctx, query, args...)
	return translateStoreErr(err)
}
