package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"licensing-system/internal/authz"
	"licensing-system/internal/controllers"
	"licensing-system/internal/services"
	"licensing-system/pkg/middleware"
)

func runReportRouter(
	secureGroup *echo.Group,
	reportService services.ReportServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	reportController := controllers.NewReportController(reportService, logger)

	secureGroup.GET("/reports/export", reportController.Export, authMW.Require(authz.ReportsExport))
}

func runDashboardRouter(secureGroup *echo.Group, dashboardService services.DashboardServiceInterface, logger *zap.Logger) {
	dashboardController := controllers.NewDashboardController(dashboardService, logger)

	secureGroup.GET("/stats", dashboardController.GetStats)
}
