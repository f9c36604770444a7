package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
)

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	CreateWithProfileInTx(ctx context.Context, tx pgx.Tx, user *entities.User, profile *entities.UserProfile) (uint64, error)
	FindProfileByUserID(ctx context.Context, userID uint64) (*entities.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uint64, department, phone *string) error
	ListTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

const userFields = "id, username, email, password_hash, first_name, last_name, created_at, updated_at"

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userFields)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userFields)
	return scanUser(r.storage.QueryRow(ctx, query, username))
}

// CreateWithProfileInTx inserts the user and its profile atomically; the
// profile row exists from the moment the account does.
func (r *UserRepository) CreateWithProfileInTx(ctx context.Context, tx pgx.Tx, user *entities.User, profile *entities.UserProfile) (uint64, error) {
	var userID uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
	).Scan(&userID)
	if err != nil {
		return 0, translateStoreErr(err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_profiles (user_id, role, department, phone)
		VALUES ($1, $2, $3, $4)`,
		userID, profile.Role, profile.Department, profile.Phone,
	)
	if err != nil {
		return 0, translateStoreErr(err)
	}

	return userID, nil
}

func (r *UserRepository) FindProfileByUserID(ctx context.Context, userID uint64) (*entities.UserProfile, error) {
	var p entities.UserProfile
	err := r.storage.QueryRow(ctx, `
		SELECT id, user_id, role, department, phone, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.Role, &p.Department, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return &p, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID uint64, department, phone *string) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE user_profiles
		SET department = COALESCE($2, department),
		    phone      = COALESCE($3, phone),
		    updated_at = NOW()
		WHERE user_id = $1`,
		userID, department, phone,
	)
	if err != nil {
		return translateStoreErr(err)
	}
	if tag.RowsAffected() == 0 {
		return translateStoreErr(pgx.ErrNoRows)
	}
	return nil
}

func (r *UserRepository) ListTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT u.id, u.username, u.first_name, u.last_name, p.department, p.role
		FROM user_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.role IN ($1, $2)
		ORDER BY u.username`,
		entities.RoleTechnician, entities.RoleAdmin,
	)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	defer rows.Close()

	technicians := make([]dto.TechnicianDTO, 0)
	for rows.Next() {
		var t dto.TechnicianDTO
		var firstName, lastName string
		if err := rows.Scan(&t.ID, &t.Username, &firstName, &lastName, &t.Department, &t.Role); err != nil {
			return nil, fmt.Errorf("failed to scan technician row: %w", err)
		}
		t.FullName = (&entities.User{Username: t.Username, FirstName: firstName, LastName: lastName}).FullName()
		technicians = append(technicians, t)
	}
	return technicians, rows.Err()
}
