package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"licensing-system/internal/entities"
)

type ReportRepositoryInterface interface {
	GetReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, error)
}

type reportRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReportRepository(db *pgxpool.Pool, logger *zap.Logger) ReportRepositoryInterface {
	return &reportRepository{db: db, logger: logger}
}

// GetReport returns every matching request, newest first. Exports are not paginated.
func (r *reportRepository) GetReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(
			"r.request_number", "r.type", "r.facility_type", "r.facility_name",
			"r.owner_name", "r.owner_phone", "r.facility_address", "COALESCE(p.name, '')", "COALESCE(u.name, '')",
			"r.status", "r.current_level", "r.fee_amount",
			"r.receipt_number", "r.receipt_amount", "r.payment_verified",
			"r.license_number", "r.license_expiry_date", "r.created_at",
		).
		From("requests r").
		LeftJoin("users u ON u.id = r.user_id").
		LeftJoin("provinces p ON p.id = r.province_id")

	if filter.ProvinceID.Valid {
		builder = builder.Where(sq.Eq{"r.province_id": filter.ProvinceID.Int})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"r.status": filter.Status})
	}
	if filter.Type != "" {
		builder = builder.Where(sq.Eq{"r.type": filter.Type})
	}
	if filter.FacilityType != "" {
		builder = builder.Where(sq.Eq{"r.facility_type": filter.FacilityType})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"r.created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.Lt{"r.created_at": *filter.DateTo})
	}

	query, args, err := builder.OrderBy("r.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build report query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run report query: %w", err)
	}
	defer rows.Close()

	items := make([]entities.ReportItem, 0)
	for rows.Next() {
		var it entities.ReportItem
		if err := rows.Scan(
			&it.RequestNumber, &it.Type, &it.FacilityType, &it.FacilityName,
			&it.OwnerName, &it.OwnerPhone, &it.FacilityAddress, &it.ProvinceName, &it.SubmitterName,
			&it.Status, &it.CurrentLevel, &it.FeeAmount,
			&it.ReceiptNumber, &it.ReceiptAmount, &it.PaymentVerified,
			&it.LicenseNumber, &it.LicenseExpiryDate, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
