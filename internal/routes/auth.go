package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"licensing-system/internal/controllers"
	"licensing-system/internal/services"
)

func runAuthRouter(api, secureGroup *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger) {
	authCtrl := controllers.NewAuthController(authService, logger)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authCtrl.Register)
	authGroup.POST("/login", authCtrl.Login)
	authGroup.POST("/refresh", authCtrl.Refresh)

	secureGroup.GET("/auth/me", authCtrl.Me)
}
