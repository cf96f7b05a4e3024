package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"licensing-system/internal/entities"
	"licensing-system/internal/repositories"
	apperrors "licensing-system/pkg/errors"
)

type ActionLogServiceInterface interface {
	Append(ctx context.Context, tx pgx.Tx, log entities.ActionLog) error
	ListForRequest(ctx context.Context, requestID uuid.UUID) ([]entities.ActionLogView, error)
}

// ActionLogService appends audit entries inside the caller's transaction.
type ActionLogService struct {
	repo   repositories.ActionLogRepositoryInterface
	logger *zap.Logger
}

func NewActionLogService(repo repositories.ActionLogRepositoryInterface, logger *zap.Logger) ActionLogServiceInterface {
	return &ActionLogService{repo: repo, logger: logger}
}

func (s *ActionLogService) Append(ctx context.Context, tx pgx.Tx, log entities.ActionLog) error {
	if log.RequestID == uuid.Nil || log.UserID == uuid.Nil {
		return fmt.Errorf("%w: action log needs a request and an actor", apperrors.ErrBadRequest)
	}
	if !log.Action.IsValid() {
		return fmt.Errorf("%w: unknown log tag %q", apperrors.ErrBadRequest, log.Action)
	}
	if strings.TrimSpace(log.Description) == "" {
		return fmt.Errorf("%w: action log description is empty", apperrors.ErrBadRequest)
	}

	if err := s.repo.CreateInTx(ctx, tx, &log); err != nil {
		s.logger.Error("ActionLogService: failed to append", zap.String("requestID", log.RequestID.String()), zap.Error(err))
		return err
	}
	return nil
}

func (s *ActionLogService) ListForRequest(ctx context.Context, requestID uuid.UUID) ([]entities.ActionLogView, error) {
	return s.repo.FindByRequestID(ctx, requestID)
}
