package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"licensing-system/internal/authz"
	"licensing-system/internal/dto"
	"licensing-system/internal/entities"
	"licensing-system/internal/repositories"
	"licensing-system/pkg/constants"
	apperrors "licensing-system/pkg/errors"
)

const reportDateLayout = "2006-01-02"

type ReportServiceInterface interface {
	GetReport(ctx context.Context, actor authz.Actor, payload dto.ReportFilterDTO) ([]entities.ReportItem, error)
}

type reportService struct {
	reportRepo repositories.ReportRepositoryInterface
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewReportService(
	reportRepo repositories.ReportRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{
		reportRepo: reportRepo,
		gatekeeper: gatekeeper,
		logger:     logger,
	}
}

func (s *reportService) GetReport(ctx context.Context, actor authz.Actor, payload dto.ReportFilterDTO) ([]entities.ReportItem, error) {
	if !s.gatekeeper.Can(actor, authz.ReportsExport, nil) {
		s.logger.Warn("reportService: export denied", zap.String("userID", actor.ID.String()), zap.String("role", string(actor.Role)))
		return nil, apperrors.ErrForbidden
	}

	filter, err := toReportFilter(payload)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.GetReport(ctx, filter)
}

// toReportFilter converts the query filter. The end date covers the whole day.
func toReportFilter(payload dto.ReportFilterDTO) (entities.ReportFilter, error) {
	filter := entities.ReportFilter{
		Status:       constants.RequestStatus(payload.Status),
		Type:         constants.RequestType(payload.Type),
		FacilityType: constants.FacilityType(payload.FacilityType),
	}
	if payload.ProvinceID > 0 {
		filter.ProvinceID = null.IntFrom(payload.ProvinceID)
	}

	if payload.StartDate != "" {
		t, err := time.Parse(reportDateLayout, payload.StartDate)
		if err != nil {
			return filter, apperrors.NewFieldError("startDate", "must be YYYY-MM-DD")
		}
		filter.DateFrom = &t
	}
	if payload.EndDate != "" {
		t, err := time.Parse(reportDateLayout, payload.EndDate)
		if err != nil {
			return filter, apperrors.NewFieldError("endDate", "must be YYYY-MM-DD")
		}
		t = t.AddDate(0, 0, 1)
		filter.DateTo = &t
	}
	if filter.DateFrom != nil && filter.DateTo != nil && !filter.DateFrom.Before(*filter.DateTo) {
		return filter, apperrors.NewFieldError("endDate", "must not be before startDate")
	}
	return filter, nil
}
