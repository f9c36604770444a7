package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"repair-system/pkg/utils"
)

func seedAdminUser(ctx context.Context, db *pgxpool.Pool) error {
	const username = "admin"

	var userID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", username).Scan(&userID)
	if err == nil {
		log.Println("  admin user already exists, skipping")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check admin existence: %w", err)
	}

	hash, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}

	err = db.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		username, "admin@example.com", hash, "System", "Administrator",
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("failed to insert admin user: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO user_profiles (user_id, role, department, phone)
		VALUES ($1, 'admin', 'IT', '')`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert admin profile: %w", err)
	}

	log.Println("  admin user created (change the default password)")
	return nil
}
