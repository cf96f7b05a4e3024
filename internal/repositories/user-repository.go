package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"licensing-system/internal/entities"
	"licensing-system/internal/infrastructure/bd"
	apperrors "licensing-system/pkg/errors"
	"licensing-system/pkg/types"
)

const userTable = "users"

var userMap = map[string]string{
	"id":          "u.id",
	"name":        "u.name",
	"email":       "u.email",
	"role":        "u.role",
	"province_id": "u.province_id",
	"is_active":   "u.is_active",
	"created_at":  "u.created_at",
}

var userColumns = []string{
	"u.id", "u.name", "u.email", "u.phone", "u.password", "u.role", "u.province_id",
	"u.is_active", "u.created_at", "u.updated_at", "p.name",
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	Update(ctx context.Context, user *entities.User) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password, &u.Role, &u.ProvinceID,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.ProvinceName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func userSelect() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(userColumns...).
		From(userTable + " u").
		LeftJoin("provinces p ON p.id = u.province_id")
}

func (r *UserRepository) findOne(ctx context.Context, q Querier, where sq.Sqlizer) (*entities.User, error) {
	query, args, err := userSelect().Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(q.QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"u.id": id})
}

// FindByEmail matches case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, r.storage, sq.Expr("LOWER(u.email) = ?", strings.ToLower(strings.TrimSpace(email))))
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"u.name": pat},
				sq.ILike{"u.email": pat},
				sq.ILike{"u.phone": pat},
			})
		}
		return b
	}

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil

	countBuilder := applySearch(psql.Select("COUNT(u.id)").From(userTable + " u"))
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, userMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	builder := applySearch(userSelect())
	builder = bd.ApplyListParams(builder, filter, userMap)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("u.created_at DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0, filter.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now

	const query = `
		INSERT INTO users (id, name, email, phone, password, role, province_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.storage.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.Phone, user.Password, user.Role,
		user.ProvinceID, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Update overwrites the mutable profile columns, including the password hash.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	user.UpdatedAt = time.Now()

	const query = `
		UPDATE users
		SET name = $1, email = $2, phone = $3, password = $4, role = $5, province_id = $6,
		    is_active = $7, updated_at = $8
		WHERE id = $9`

	result, err := r.storage.Exec(ctx, query,
		user.Name, user.Email, user.Phone, user.Password, user.Role, user.ProvinceID,
		user.IsActive, user.UpdatedAt, user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Deactivate is the only way a user leaves the system; rows are never deleted.
func (r *UserRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
