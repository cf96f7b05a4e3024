package services

import (
	"context"

	"go.uber.org/zap"

	"licensing-system/internal/entities"
	"licensing-system/internal/repositories"
	"licensing-system/internal/workflow"
	"licensing-system/pkg/constants"
)

type ReferenceServiceInterface interface {
	GetProvinces(ctx context.Context) ([]entities.Province, error)
	GetFeeTypes(ctx context.Context) ([]entities.FeeType, error)
	QuoteFee(requestType constants.RequestType, facilityType constants.FacilityType) int64
}

type ReferenceService struct {
	repo   repositories.ReferenceRepositoryInterface
	logger *zap.Logger
}

func NewReferenceService(repo repositories.ReferenceRepositoryInterface, logger *zap.Logger) ReferenceServiceInterface {
	return &ReferenceService{repo: repo, logger: logger}
}

func (s *ReferenceService) GetProvinces(ctx context.Context) ([]entities.Province, error) {
	return s.repo.GetProvinces(ctx)
}

func (s *ReferenceService) GetFeeTypes(ctx context.Context) ([]entities.FeeType, error) {
	return s.repo.GetFeeTypes(ctx, true)
}

func (s *ReferenceService) QuoteFee(requestType constants.RequestType, facilityType constants.FacilityType) int64 {
	return workflow.CalculateFee(requestType, facilityType)
}
