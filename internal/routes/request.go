package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"licensing-system/internal/controllers"
	"licensing-system/internal/services"
)

func runRequestRouter(secureGroup *echo.Group, requestService services.RequestServiceInterface, logger *zap.Logger) {
	requestCtrl := controllers.NewRequestController(requestService, logger)

	secureGroup.POST("/requests", requestCtrl.CreateRequest)
	secureGroup.GET("/requests", requestCtrl.GetRequests)
	secureGroup.GET("/requests/:id", requestCtrl.GetRequest)
	secureGroup.GET("/requests/:id/logs", requestCtrl.GetLogs)
	secureGroup.POST("/requests/:id/actions", requestCtrl.Act)
}

func runReferenceRouter(api, secureGroup *echo.Group, referenceService services.ReferenceServiceInterface, logger *zap.Logger) {
	referenceCtrl := controllers.NewReferenceController(referenceService, logger)

	api.GET("/provinces", referenceCtrl.GetProvinces)
	secureGroup.GET("/fee-types", referenceCtrl.GetFeeTypes)
	secureGroup.GET("/fees/quote", referenceCtrl.QuoteFee)
}
