package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"licensing-system/pkg/types"
)

// RequestTotals are the headline counters of the dashboard.
type RequestTotals struct {
	Total     int64
	Pending   int64
	Completed int64
	Rejected  int64
}

// DashboardRepositoryInterface aggregates requests and users. Every request query takes an
// optional securityCondition that narrows the rows the caller may see.
type DashboardRepositoryInterface interface {
	GetRequestTotals(ctx context.Context, securityCondition sq.Sqlizer) (*RequestTotals, error)
	CountRequests(ctx context.Context, securityCondition sq.Sqlizer) (int64, error)
	GetCountByType(ctx context.Context, securityCondition sq.Sqlizer) ([]types.DashboardCountByGroup, error)
	GetCountByStatus(ctx context.Context, securityCondition sq.Sqlizer) ([]types.DashboardCountByGroup, error)
	GetCountByProvince(ctx context.Context, securityCondition sq.Sqlizer) ([]types.DashboardCountByGroup, error)
	GetMonthly(ctx context.Context, securityCondition sq.Sqlizer, months int) ([]types.DashboardMonth, error)
	CountUsers(ctx context.Context) (int64, error)
	GetUsersByRole(ctx context.Context) ([]types.DashboardCountByGroup, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

func applySecurity(b sq.SelectBuilder, securityCondition sq.Sqlizer) sq.SelectBuilder {
	if securityCondition != nil {
		return b.Where(securityCondition)
	}
	return b
}

func (r *DashboardRepository) GetRequestTotals(ctx context.Context, securityCondition sq.Sqlizer) (*RequestTotals, error) {
	base := sq.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE r.status LIKE 'PENDING_%')",
		"COUNT(*) FILTER (WHERE r.status = 'COMPLETED')",
		"COUNT(*) FILTER (WHERE r.status = 'REJECTED')",
	).From("requests r")

	base = applySecurity(base, securityCondition)
	query, args, err := base.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	totals := &RequestTotals{}
	err = r.storage.QueryRow(ctx, query, args...).Scan(&totals.Total, &totals.Pending, &totals.Completed, &totals.Rejected)
	if err != nil {
		return nil, fmt.Errorf("failed to load request totals: %w", err)
	}
	return totals, nil
}

func (r *DashboardRepository) CountRequests(ctx context.Context, securityCondition sq.Sqlizer) (int64, error) {
	base := applySecurity(sq.Select("COUNT(*)").From("requests r"), securityCondition)
	query, args, err := base.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return count, nil
}

func (r *DashboardRepository) GetCountByType(ctx context.Context, securityCondition sq.Sqlizer) ([]types.DashboardCountByGroup, error) {
	base := sq.Select("r.type", "''", "COUNT(*)").From("requests r").GroupBy("r.type").OrderBy("r.type")
	return r.queryGroups(ctx, applySecurity(base, securityCondition))
}

func (r *DashboardRepository) GetCountByStatus(ctx context.Context, securityCondition sq.Sqlizer) ([]types.DashboardCountByGroup, error) {
	base := sq.Select("r.status", "''", "COUNT(*)").From("requests r").GroupBy("r.status").OrderBy("r.status")
	return r.queryGroups(ctx, applySecurity(base, securityCondition))
}

func (r *DashboardRepository) GetCountByProvince(ctx context.Context, securityCondition sq.Sqlizer) ([]types.DashboardCountByGroup, error) {
	base := sq.Select("p.code", "p.name", "COUNT(*)").
		From("requests r").
		Join("provinces p ON p.id = r.province_id").
		GroupBy("p.id", "p.code", "p.name").
		OrderBy("COUNT(*) DESC", "p.name")
	return r.queryGroups(ctx, applySecurity(base, securityCondition))
}

// GetMonthly returns one row for each of the last months calendar months, the current one
// included, with empty months reported as zero.
func (r *DashboardRepository) GetMonthly(ctx context.Context, securityCondition sq.Sqlizer, months int) ([]types.DashboardMonth, error) {
	if months < 1 {
		months = 1
	}
	start := fmt.Sprintf("date_trunc('month', NOW()) - interval '%d months'", months-1)

	inner := sq.Select(
		"date_trunc('month', r.created_at) AS month",
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE r.status = 'COMPLETED') AS completed",
	).From("requests r").
		Where(sq.Expr("r.created_at >= " + start)).
		GroupBy("1")
	inner = applySecurity(inner, securityCondition)

	innerSQL, innerArgs, err := inner.ToSql()
	if err != nil {
		return nil, err
	}

	base := sq.Select(
		"to_char(m.month, 'YYYY-MM')",
		"COALESCE(s.total, 0)",
		"COALESCE(s.completed, 0)",
	).From("generate_series(" + start + ", date_trunc('month', NOW()), interval '1 month') AS m(month)").
		LeftJoin("("+innerSQL+") s ON s.month = m.month", innerArgs...).
		OrderBy("m.month")

	query, args, err := base.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly stats: %w", err)
	}
	defer rows.Close()

	result := make([]types.DashboardMonth, 0, months)
	for rows.Next() {
		var m types.DashboardMonth
		if err := rows.Scan(&m.Month, &m.Total, &m.Completed); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *DashboardRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_active`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *DashboardRepository) GetUsersByRole(ctx context.Context) ([]types.DashboardCountByGroup, error) {
	base := sq.Select("u.role", "''", "COUNT(*)").From("users u").
		Where(sq.Eq{"u.is_active": true}).
		GroupBy("u.role").
		OrderBy("u.role")
	return r.queryGroups(ctx, base)
}

func (r *DashboardRepository) queryGroups(ctx context.Context, b sq.SelectBuilder) ([]types.DashboardCountByGroup, error) {
	query, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load grouped stats: %w", err)
	}
	return scanGroups(rows)
}

func scanGroups(rows pgx.Rows) ([]types.DashboardCountByGroup, error) {
	defer rows.Close()
	result := make([]types.DashboardCountByGroup, 0)
	for rows.Next() {
		var g types.DashboardCountByGroup
		if err := rows.Scan(&g.Key, &g.Label, &g.Count); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}
