package seeders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"licensing-system/pkg/utils"
)

func seedDemoUsers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - filling 'users'...")
	hashedPassword, err := utils.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, name, email, phone, password, role, province_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8, $8)
		ON CONFLICT ((LOWER(email))) DO NOTHING`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	for _, u := range demoUsersData {
		var provinceID null.Int
		if u.ProvinceCode != "" {
			var id int
			if err := tx.QueryRow(ctx, "SELECT id FROM provinces WHERE code = $1", u.ProvinceCode).Scan(&id); err != nil {
				return fmt.Errorf("province %s not found, run -core first: %w", u.ProvinceCode, err)
			}
			provinceID = null.IntFrom(id)
		}
		if _, err := tx.Exec(ctx, query, uuid.New(), u.Name, u.Email, u.Phone, hashedPassword, string(u.Role), provinceID, now); err != nil {
			return err
		}
		log.Printf("    - %s / %s (%s)", u.Email, demoPassword, u.Role)
	}
	return tx.Commit(ctx)
}
