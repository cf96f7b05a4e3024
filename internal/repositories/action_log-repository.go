package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"licensing-system/internal/entities"
)

// ActionLogRepositoryInterface is append-only: there is no update or delete.
type ActionLogRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, log *entities.ActionLog) error
	FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]entities.ActionLogView, error)
}

type ActionLogRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewActionLogRepository(storage *pgxpool.Pool, logger *zap.Logger) ActionLogRepositoryInterface {
	return &ActionLogRepository{storage: storage, logger: logger}
}

func (r *ActionLogRepository) CreateInTx(ctx context.Context, tx pgx.Tx, log *entities.ActionLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	const query = `
		INSERT INTO action_logs (id, request_id, user_id, action, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	if _, err := tx.Exec(ctx, query,
		log.ID, log.RequestID, log.UserID, log.Action, log.Description, log.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert action log: %w", err)
	}
	return nil
}

// FindByRequestID returns the log newest first, with the actor's current name and role.
func (r *ActionLogRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]entities.ActionLogView, error) {
	const query = `
		SELECT l.id, l.request_id, l.user_id, l.action, l.description, l.created_at,
		       COALESCE(u.name, ''), COALESCE(u.role, '')
		FROM action_logs l
		LEFT JOIN users u ON u.id = l.user_id
		WHERE l.request_id = $1
		ORDER BY l.created_at DESC, l.id DESC`

	rows, err := r.storage.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query action logs: %w", err)
	}
	defer rows.Close()

	logs := make([]entities.ActionLogView, 0)
	for rows.Next() {
		var l entities.ActionLogView
		if err := rows.Scan(
			&l.ID, &l.RequestID, &l.UserID, &l.Action, &l.Description, &l.CreatedAt,
			&l.UserName, &l.UserRole,
		); err != nil {
			return nil, fmt.Errorf("failed to scan action log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
