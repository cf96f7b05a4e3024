package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedProvinces(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - filling 'provinces'...")
	query := `INSERT INTO provinces (name, code) VALUES ($1, $2) ON CONFLICT (code) DO NOTHING`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	for _, p := range provincesData {
		if _, err := tx.Exec(ctx, query, p.Name, p.Code); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedFeeTypes(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - filling 'fee_types'...")
	query := `INSERT INTO fee_types (name, code, amount, description) VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, amount = EXCLUDED.amount, description = EXCLUDED.description`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	for _, f := range feeTypesData {
		if _, err := tx.Exec(ctx, query, f.Name, f.Code, f.Amount, f.Description); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
