package repositories

import (
	"context"
	"errors"
	"fmt"

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

const requestTable = "requests"

var requestMap = map[string]string{
	"id":             "r.id",
	"request_number": "r.request_number",
	"type":           "r.type",
	"facility_type":  "r.facility_type",
	"status":         "r.status",
	"current_level":  "r.current_level",
	"province_id":    "r.province_id",
	"user_id":        "r.user_id",
	"facility_name":  "r.facility_name",
	"fee_amount":     "r.fee_amount",
	"created_at":     "r.created_at",
	"updated_at":     "r.updated_at",
}

var requestColumns = []string{
	"r.id", "r.request_number", "r.type", "r.facility_type", "r.user_id",
	"r.facility_name", "r.owner_name", "r.owner_phone", "r.owner_email", "r.owner_address",
	"r.facility_address", "r.province_id", "r.fee_amount",
	"r.status", "r.current_level",
	"r.branch_approved", "r.branch_approved_by", "r.branch_approved_at", "r.branch_notes",
	"r.facilities_approved", "r.facilities_approved_by", "r.facilities_approved_at", "r.facilities_notes",
	"r.review_approved", "r.review_approved_by", "r.review_approved_at", "r.review_notes",
	"r.deputy_approved", "r.deputy_approved_by", "r.deputy_approved_at", "r.deputy_notes",
	"r.receipt_number", "r.receipt_amount", "r.receipt_issued_at",
	"r.payment_reference", "r.payment_verified", "r.paid_at",
	"r.license_number", "r.license_issued_at", "r.license_expiry_date",
	"r.created_at", "r.updated_at",
}

var requestDetailColumns = append(append([]string{}, requestColumns...),
	"COALESCE(u.name, '')", "COALESCE(u.email, '')",
	"COALESCE(p.name, '')", "COALESCE(p.code, '')",
)

type RequestRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, req *entities.Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.RequestDetails, error)
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Request, error)
	UpdateStateInTx(ctx context.Context, tx pgx.Tx, req *entities.Request) error
	GetRequests(ctx context.Context, scope sq.Sqlizer, filter types.Filter) ([]entities.RequestDetails, uint64, error)
}

type RequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RequestRepositoryInterface {
	return &RequestRepository{storage: storage, logger: logger}
}

func requestScanTargets(r *entities.Request) []any {
	return []any{
		&r.ID, &r.RequestNumber, &r.Type, &r.FacilityType, &r.UserID,
		&r.FacilityName, &r.OwnerName, &r.OwnerPhone, &r.OwnerEmail, &r.OwnerAddress,
		&r.FacilityAddress, &r.ProvinceID, &r.FeeAmount,
		&r.Status, &r.CurrentLevel,
		&r.Branch.Approved, &r.Branch.ApprovedBy, &r.Branch.ApprovedAt, &r.Branch.Notes,
		&r.Facilities.Approved, &r.Facilities.ApprovedBy, &r.Facilities.ApprovedAt, &r.Facilities.Notes,
		&r.Review.Approved, &r.Review.ApprovedBy, &r.Review.ApprovedAt, &r.Review.Notes,
		&r.Deputy.Approved, &r.Deputy.ApprovedBy, &r.Deputy.ApprovedAt, &r.Deputy.Notes,
		&r.ReceiptNumber, &r.ReceiptAmount, &r.ReceiptIssuedAt,
		&r.PaymentReference, &r.PaymentVerified, &r.PaidAt,
		&r.LicenseNumber, &r.LicenseIssuedAt, &r.LicenseExpiryDate,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

func scanRequest(row pgx.Row) (*entities.Request, error) {
	var r entities.Request
	err := row.Scan(requestScanTargets(&r)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan request: %w", err)
	}
	return &r, nil
}

func scanRequestDetails(row pgx.Row) (*entities.RequestDetails, error) {
	var d entities.RequestDetails
	targets := append(requestScanTargets(&d.Request),
		&d.SubmitterName, &d.SubmitterEmail, &d.ProvinceName, &d.ProvinceCode,
	)
	err := row.Scan(targets...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan request: %w", err)
	}
	return &d, nil
}

func detailsSelect() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(requestDetailColumns...).
		From(requestTable + " r").
		LeftJoin("users u ON u.id = r.user_id").
		LeftJoin("provinces p ON p.id = r.province_id")
}

func (r *RequestRepository) GetRequests(ctx context.Context, scope sq.Sqlizer, filter types.Filter) ([]entities.RequestDetails, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyScope := func(b sq.SelectBuilder) sq.SelectBuilder {
		if scope != nil {
			b = b.Where(scope)
		}
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"r.request_number": pat},
				sq.ILike{"r.facility_name": pat},
				sq.ILike{"r.owner_name": pat},
			})
		}
		return b
	}

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil

	countBuilder := applyScope(psql.Select("COUNT(r.id)").From(requestTable + " r"))
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, requestMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}
	if total == 0 {
		return []entities.RequestDetails{}, 0, nil
	}

	builder := applyScope(detailsSelect())
	builder = bd.ApplyListParams(builder, filter, requestMap)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("r.created_at DESC", "r.id DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	requests := make([]entities.RequestDetails, 0, filter.Limit)
	for rows.Next() {
		d, err := scanRequestDetails(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *d)
	}
	return requests, total, rows.Err()
}

func (r *RequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.RequestDetails, error) {
	query, args, err := detailsSelect().Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanRequestDetails(r.storage.QueryRow(ctx, query, args...))
}

// FindByIDForUpdate locks the row until tx ends.
func (r *RequestRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Request, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(requestColumns...).
		From(requestTable + " r").
		Where(sq.Eq{"r.id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanRequest(tx.QueryRow(ctx, query, args...))
}

func (r *RequestRepository) CreateInTx(ctx context.Context, tx pgx.Tx, req *entities.Request) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Insert(requestTable).
		SetMap(map[string]interface{}{
			"id":               req.ID,
			"request_number":   req.RequestNumber,
			"type":             req.Type,
			"facility_type":    req.FacilityType,
			"user_id":          req.UserID,
			"facility_name":    req.FacilityName,
			"owner_name":       req.OwnerName,
			"owner_phone":      req.OwnerPhone,
			"owner_email":      req.OwnerEmail,
			"owner_address":    req.OwnerAddress,
			"facility_address": req.FacilityAddress,
			"province_id":      req.ProvinceID,
			"fee_amount":       req.FeeAmount,
			"status":           req.Status,
			"current_level":    req.CurrentLevel,
			"created_at":       req.CreatedAt,
			"updated_at":       req.UpdatedAt,
		}).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: request number %s already exists", apperrors.ErrConflict, req.RequestNumber)
		}
		return fmt.Errorf("failed to insert request: %w", err)
	}
	return nil
}

// UpdateStateInTx writes the workflow-owned columns. Submission data is never touched.
func (r *RequestRepository) UpdateStateInTx(ctx context.Context, tx pgx.Tx, req *entities.Request) error {
	set := map[string]interface{}{
		"status":              req.Status,
		"current_level":       req.CurrentLevel,
		"receipt_number":      req.ReceiptNumber,
		"receipt_amount":      req.ReceiptAmount,
		"receipt_issued_at":   req.ReceiptIssuedAt,
		"payment_reference":   req.PaymentReference,
		"payment_verified":    req.PaymentVerified,
		"paid_at":             req.PaidAt,
		"license_number":      req.LicenseNumber,
		"license_issued_at":   req.LicenseIssuedAt,
		"license_expiry_date": req.LicenseExpiryDate,
		"updated_at":          req.UpdatedAt,
	}
	for prefix, a := range map[string]*entities.LevelApproval{
		"branch":     &req.Branch,
		"facilities": &req.Facilities,
		"review":     &req.Review,
		"deputy":     &req.Deputy,
	} {
		set[prefix+"_approved"] = a.Approved
		set[prefix+"_approved_by"] = a.ApprovedBy
		set[prefix+"_approved_at"] = a.ApprovedAt
		set[prefix+"_notes"] = a.Notes
	}

	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update(requestTable).
		SetMap(set).
		Where(sq.Eq{"id": req.ID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: license number %s is already in use", apperrors.ErrConflict, req.LicenseNumber.String)
		}
		return fmt.Errorf("failed to update request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
