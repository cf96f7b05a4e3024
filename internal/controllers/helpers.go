package controllers

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "licensing-system/pkg/errors"
)

// bindAndValidate binds the request into payload and runs the registered validator.
func bindAndValidate(ctx echo.Context, payload interface{}) error {
	if err := ctx.Bind(payload); err != nil {
		return apperrors.NewInvalidInputError("malformed request body")
	}
	return ctx.Validate(payload)
}

func parseUUIDParam(ctx echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.NewFieldError(name, "must be a valid UUID")
	}
	return id, nil
}
