package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"licensing-system/internal/dto"
	"licensing-system/internal/services"
	"licensing-system/pkg/api"
)

type ReferenceController struct {
	referenceService services.ReferenceServiceInterface
	logger           *zap.Logger
}

func NewReferenceController(referenceService services.ReferenceServiceInterface, logger *zap.Logger) *ReferenceController {
	return &ReferenceController{referenceService: referenceService, logger: logger}
}

func (c *ReferenceController) GetProvinces(ctx echo.Context) error {
	provinces, err := c.referenceService.GetProvinces(ctx.Request().Context())
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Provinces", provinces)
}

func (c *ReferenceController) GetFeeTypes(ctx echo.Context) error {
	feeTypes, err := c.referenceService.GetFeeTypes(ctx.Request().Context())
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Fee types", feeTypes)
}

func (c *ReferenceController) QuoteFee(ctx echo.Context) error {
	var quote dto.FeeQuoteDTO
	if err := bindAndValidate(ctx, &quote); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	quote.Amount = c.referenceService.QuoteFee(quote.Type, quote.FacilityType)
	return api.SuccessOne(ctx, http.StatusOK, "Fee quote", quote)
}
