package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var defaultCategories = []struct {
	Name        string
	Description string
}{
	{"Computers", "Desktops, laptops and workstations"},
	{"Printers", "Printers, scanners and MFPs"},
	{"Network", "Switches, routers and access points"},
	{"Peripherals", "Monitors, keyboards and other accessories"},
}

func seedEquipmentCategories(ctx context.Context, db *pgxpool.Pool) error {
	for _, c := range defaultCategories {
		_, err := db.Exec(ctx, `
			INSERT INTO equipment_categories (name, description)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING`,
			c.Name, c.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert category %q: %w", c.Name, err)
		}
	}
	log.Printf("  %d categories ensured", len(defaultCategories))
	return nil
}

var defaultEquipments = []struct {
	Code     string
	Name     string
	Category string
	Location string
}{
	{"PC-0001", "Dell OptiPlex 7010", "Computers", "Office 101"},
	{"PC-0002", "HP EliteBook 840", "Computers", "Office 102"},
	{"PR-0001", "HP LaserJet Pro M404", "Printers", "Office 101"},
	{"NW-0001", "Cisco Catalyst 2960", "Network", "Server room"},
}

func seedEquipments(ctx context.Context, db *pgxpool.Pool) error {
	for _, e := range defaultEquipments {
		_, err := db.Exec(ctx, `
			INSERT INTO equipments (equipment_code, name, category_id, location, condition, is_active)
			SELECT $1, $2, c.id, $3, 'good', TRUE
			FROM equipment_categories c
			WHERE c.name = $4
			ON CONFLICT (equipment_code) DO NOTHING`,
			e.Code, e.Name, e.Location, e.Category,
		)
		if err != nil {
			return fmt.Errorf("failed to insert equipment %q: %w", e.Code, err)
		}
	}
	log.Printf("  %d equipment items ensured", len(defaultEquipments))
	return nil
}
