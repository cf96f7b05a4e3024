package main

import (
	"flag"
	"log"

	"licensing-system/pkg/config"
	"licensing-system/pkg/database/migrations"
	"licensing-system/pkg/database/postgresql"
	"licensing-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 licensing-system seeders")
	log.Println("======================================================")

	runMigrate := flag.Bool("migrate", false, "apply database migrations first")
	runCore := flag.Bool("core", false, "seed provinces and fee types")
	runUsers := flag.Bool("users", false, "seed one demo account per role")
	runAll := flag.Bool("all", false, "run everything (-migrate -core -users)")

	flag.Parse()

	if !*runMigrate && !*runCore && !*runUsers && !*runAll {
		log.Println("❌ nothing selected.")
		log.Println("")
		log.Println("Flags:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Examples:")
		log.Println("  go run ./seeders/cmd/seed -core")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	log.Println("======================================================")

	if *runAll || *runMigrate {
		if err := migrations.Up(dbPool); err != nil {
			log.Fatalf("❌ %v", err)
		}
		log.Println("✅ migrations applied")
		log.Println("======================================================")
	}

	if *runAll || *runCore {
		seeders.SeedCoreDictionaries(dbPool)
		log.Println("======================================================")
	}

	if *runAll || *runUsers {
		seeders.SeedDemoUsers(dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ done")
	log.Println("======================================================")
}
