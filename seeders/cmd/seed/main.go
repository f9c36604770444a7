package main

import (
	"flag"
	"log"

	"repair-system/pkg/config"
	"repair-system/pkg/database/postgresql"
	"repair-system/seeders"
)

func main() {
	runAdmin := flag.Bool("admin", false, "create the default admin user")
	runEquipment := flag.Bool("equipment", false, "fill the equipment dictionaries")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runAdmin && !*runEquipment && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runAdmin {
		seeders.SeedAdmin(dbPool)
	}
	if *runAll || *runEquipment {
		seeders.SeedEquipment(dbPool)
	}
	log.Println("seeding finished")
}
