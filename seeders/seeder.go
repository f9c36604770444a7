package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedAdmin creates the default admin account with a profile if it is missing.
func SeedAdmin(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding admin user...")

	if err := seedAdminUser(ctx, db); err != nil {
		log.Fatalf("admin seeding failed: %v", err)
	}
	log.Println("admin user done")
}

// SeedEquipment fills the equipment dictionaries with a starter set.
func SeedEquipment(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding equipment dictionaries...")

	if err := seedEquipmentCategories(ctx, db); err != nil {
		log.Fatalf("category seeding failed: %v", err)
	}
	if err := seedEquipments(ctx, db); err != nil {
		log.Fatalf("equipment seeding failed: %v", err)
	}
	log.Println("equipment dictionaries done")
}
