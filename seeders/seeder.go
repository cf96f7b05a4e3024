package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCoreDictionaries fills provinces and fee types. Safe to run repeatedly.
func SeedCoreDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  seeding reference data...")

	if err := seedProvinces(ctx, db); err != nil {
		log.Fatalf("❌ failed to seed provinces: %v", err)
	}
	if err := seedFeeTypes(ctx, db); err != nil {
		log.Fatalf("❌ failed to seed fee types: %v", err)
	}
	log.Println("✅ reference data ready")
}

// SeedDemoUsers creates one account per role. Requires the provinces.
func SeedDemoUsers(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  seeding demo users...")

	if err := seedDemoUsers(ctx, db); err != nil {
		log.Fatalf("❌ failed to seed demo users: %v", err)
	}
	log.Println("✅ demo users ready")
}
