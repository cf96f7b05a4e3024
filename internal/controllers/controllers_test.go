package controllers

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"licensing-system/internal/authz"
	"licensing-system/internal/dto"
	"licensing-system/internal/entities"
	"licensing-system/pkg/customvalidator"
	"licensing-system/pkg/types"
	"licensing-system/pkg/utils"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		panic(err)
	}
	e.Validator = utils.NewValidator(v)
	return e
}

// newContext builds an echo context for target, with actor attached unless it is nil.
func newContext(e *echo.Echo, method, target, body string, actor *authz.Actor) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actor != nil {
		req = req.WithContext(utils.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type stubRequestService struct {
	act     func(actor authz.Actor, id uuid.UUID, payload dto.RequestActionDTO) (*dto.RequestDetailsDTO, error)
	list    func(actor authz.Actor, filter types.Filter, all bool) ([]entities.RequestDetails, uint64, error)
	created *dto.CreateRequestDTO
}

func (s *stubRequestService) CreateRequest(ctx context.Context, actor authz.Actor, payload dto.CreateRequestDTO) (*dto.RequestDetailsDTO, error) {
	s.created = &payload
	return &dto.RequestDetailsDTO{}, nil
}

func (s *stubRequestService) GetRequests(ctx context.Context, actor authz.Actor, filter types.Filter, all bool) ([]entities.RequestDetails, uint64, error) {
	return s.list(actor, filter, all)
}

func (s *stubRequestService) GetRequest(ctx context.Context, actor authz.Actor, id uuid.UUID) (*dto.RequestDetailsDTO, error) {
	return &dto.RequestDetailsDTO{}, nil
}

func (s *stubRequestService) GetLogs(ctx context.Context, actor authz.Actor, id uuid.UUID) ([]entities.ActionLogView, error) {
	return []entities.ActionLogView{}, nil
}

func (s *stubRequestService) Act(ctx context.Context, actor authz.Actor, id uuid.UUID, payload dto.RequestActionDTO) (*dto.RequestDetailsDTO, error) {
	return s.act(actor, id, payload)
}
