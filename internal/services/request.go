package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"licensing-system/internal/authz"
	"licensing-system/internal/dto"
	"licensing-system/internal/entities"
	"licensing-system/internal/events"
	"licensing-system/internal/repositories"
	"licensing-system/internal/workflow"
	"licensing-system/pkg/constants"
	apperrors "licensing-system/pkg/errors"
	"licensing-system/pkg/eventbus"
	"licensing-system/pkg/types"
	"licensing-system/pkg/utils"
)

type RequestServiceInterface interface {
	CreateRequest(ctx context.Context, actor authz.Actor, payload dto.CreateRequestDTO) (*dto.RequestDetailsDTO, error)
	GetRequests(ctx context.Context, actor authz.Actor, filter types.Filter, all bool) ([]entities.RequestDetails, uint64, error)
	GetRequest(ctx context.Context, actor authz.Actor, id uuid.UUID) (*dto.RequestDetailsDTO, error)
	GetLogs(ctx context.Context, actor authz.Actor, id uuid.UUID) ([]entities.ActionLogView, error)
	Act(ctx context.Context, actor authz.Actor, id uuid.UUID, payload dto.RequestActionDTO) (*dto.RequestDetailsDTO, error)
}

type RequestService struct {
	txManager     repositories.TxManagerInterface
	requestRepo   repositories.RequestRepositoryInterface
	sequenceRepo  repositories.RequestSequenceRepositoryInterface
	referenceRepo repositories.ReferenceRepositoryInterface
	actionLogs    ActionLogServiceInterface
	gatekeeper    *authz.Gatekeeper
	bus           *eventbus.Bus
	logger        *zap.Logger
	now           func() time.Time
}

func NewRequestService(
	txManager repositories.TxManagerInterface,
	requestRepo repositories.RequestRepositoryInterface,
	sequenceRepo repositories.RequestSequenceRepositoryInterface,
	referenceRepo repositories.ReferenceRepositoryInterface,
	actionLogs ActionLogServiceInterface,
	gatekeeper *authz.Gatekeeper,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		txManager:     txManager,
		requestRepo:   requestRepo,
		sequenceRepo:  sequenceRepo,
		referenceRepo: referenceRepo,
		actionLogs:    actionLogs,
		gatekeeper:    gatekeeper,
		bus:           bus,
		logger:        logger,
		now:           time.Now,
	}
}

// CreateRequest stores a new request at PENDING_BRANCH with its computed fee and a
// freshly allocated request number.
func (s *RequestService) CreateRequest(ctx context.Context, actor authz.Actor, payload dto.CreateRequestDTO) (*dto.RequestDetailsDTO, error) {
	if !s.gatekeeper.Can(actor, authz.RequestsCreate, nil) {
		return nil, apperrors.ErrForbidden
	}

	provinceID := payload.ProvinceID
	if _, err := checkProvince(ctx, s.referenceRepo, &provinceID); err != nil {
		return nil, err
	}

	now := s.now()
	initial := workflow.PendingAt(constants.LevelBranch)
	req := entities.Request{
		ID:              uuid.New(),
		Type:            payload.Type,
		FacilityType:    payload.FacilityType,
		UserID:          actor.ID,
		FacilityName:    strings.TrimSpace(payload.FacilityName),
		OwnerName:       strings.TrimSpace(payload.OwnerName),
		OwnerPhone:      utils.NormalizeYemeniPhoneNumber(payload.OwnerPhone),
		OwnerEmail:      nullIfBlank(normalizeEmail(payload.OwnerEmail)),
		OwnerAddress:    nullIfBlank(payload.OwnerAddress),
		FacilityAddress: strings.TrimSpace(payload.FacilityAddress),
		ProvinceID:      provinceID,
		FeeAmount:       workflow.CalculateFee(payload.Type, payload.FacilityType),
		Status:          initial.Status(),
		CurrentLevel:    initial.CurrentLevel(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if !authz.WithinProvince(actor, &req) {
		return nil, fmt.Errorf("%w: request belongs to another province", apperrors.ErrForbidden)
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		seq, err := s.sequenceRepo.NextInTx(ctx, tx, repositories.RequestNumberSequence)
		if err != nil {
			return err
		}
		req.RequestNumber = workflow.FormatRequestNumber(now.Year(), seq)

		if err := s.requestRepo.CreateInTx(ctx, tx, &req); err != nil {
			return err
		}

		return s.actionLogs.Append(ctx, tx, entities.ActionLog{
			RequestID:   req.ID,
			UserID:      actor.ID,
			Action:      constants.LogCreate,
			Description: fmt.Sprintf(constants.LogTextCreated, req.RequestNumber, req.FeeAmount),
			CreatedAt:   now,
		})
	})
	if err != nil {
		s.logger.Error("RequestService: failed to create request", zap.String("userID", actor.ID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("RequestService: request created",
		zap.String("requestID", req.ID.String()),
		zap.String("number", req.RequestNumber),
		zap.Int64("fee", req.FeeAmount),
	)
	s.bus.Publish(ctx, events.RequestCreatedEvent{
		RequestID:     req.ID,
		RequestNumber: req.RequestNumber,
		ProvinceID:    req.ProvinceID,
		SubmitterID:   actor.ID,
		FeeAmount:     req.FeeAmount,
		At:            now,
	})

	return s.GetRequest(ctx, actor, req.ID)
}

// GetRequests lists the actor's work queue, or everything the actor may read when all is set.
func (s *RequestService) GetRequests(ctx context.Context, actor authz.Actor, filter types.Filter, all bool) ([]entities.RequestDetails, uint64, error) {
	if !s.gatekeeper.Can(actor, authz.RequestsView, nil) {
		return nil, 0, apperrors.ErrForbidden
	}
	scope := queueScope(actor)
	if all {
		scope = visibilityScope(actor)
	}
	return s.requestRepo.GetRequests(ctx, scope, filter)
}

func (s *RequestService) GetRequest(ctx context.Context, actor authz.Actor, id uuid.UUID) (*dto.RequestDetailsDTO, error) {
	details, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	logs, err := s.actionLogs.ListForRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	actions := []constants.RequestAction{}
	if s.gatekeeper.Can(actor, authz.RequestsAct, nil) && authz.WithinProvince(actor, &details.Request) {
		if available := workflow.Available(details.Request, actor); available != nil {
			actions = available
		}
	}

	return &dto.RequestDetailsDTO{
		RequestDetails:   *details,
		Logs:             logs,
		AvailableActions: actions,
	}, nil
}

func (s *RequestService) GetLogs(ctx context.Context, actor authz.Actor, id uuid.UUID) ([]entities.ActionLogView, error) {
	if _, err := s.findVisible(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.actionLogs.ListForRequest(ctx, id)
}

// Act applies one workflow action under a row lock. The state change and its log entry
// are committed together or not at all.
func (s *RequestService) Act(ctx context.Context, actor authz.Actor, id uuid.UUID, payload dto.RequestActionDTO) (*dto.RequestDetailsDTO, error) {
	if !s.gatekeeper.Can(actor, authz.RequestsAct, nil) {
		return nil, apperrors.ErrForbidden
	}

	cmd := workflow.Command{
		Action:           payload.Action,
		Notes:            payload.Notes,
		ReceiptNumber:    payload.ReceiptNumber,
		ReceiptAmount:    payload.ReceiptAmount,
		PaymentReference: payload.PaymentReference,
		LicenseNumber:    payload.LicenseNumber,
	}
	logger := s.logger.With(
		zap.String("requestID", id.String()),
		zap.String("action", string(cmd.Action)),
		zap.String("actorID", actor.ID.String()),
	)

	var outcome workflow.Outcome
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.requestRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if !authz.WithinProvince(actor, req) {
			return fmt.Errorf("%w: request belongs to another province", apperrors.ErrForbidden)
		}

		outcome, err = workflow.Apply(*req, actor, cmd, s.now())
		if err != nil {
			return err
		}

		if err := s.requestRepo.UpdateStateInTx(ctx, tx, &outcome.Request); err != nil {
			return err
		}
		return s.actionLogs.Append(ctx, tx, outcome.Log)
	})
	if err != nil {
		logger.Warn("RequestService: action refused", zap.Error(err))
		return nil, err
	}

	logger.Info("RequestService: request transitioned",
		zap.String("from", outcome.From.String()),
		zap.String("to", outcome.To.String()),
	)
	s.bus.Publish(ctx, events.RequestTransitionedEvent{
		RequestID:     outcome.Request.ID,
		RequestNumber: outcome.Request.RequestNumber,
		Action:        cmd.Action,
		From:          outcome.From.String(),
		To:            outcome.To.String(),
		FromStatus:    outcome.From.Status(),
		ToStatus:      outcome.To.Status(),
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		At:            outcome.Request.UpdatedAt,
	})

	return s.GetRequest(ctx, actor, id)
}

func (s *RequestService) findVisible(ctx context.Context, actor authz.Actor, id uuid.UUID) (*entities.RequestDetails, error) {
	details, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.gatekeeper.Can(actor, authz.RequestsView, details) {
		return nil, apperrors.ErrForbidden
	}
	return details, nil
}

func nullIfBlank(s string) null.String {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
