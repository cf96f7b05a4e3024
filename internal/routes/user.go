package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"licensing-system/internal/authz"
	"licensing-system/internal/controllers"
	"licensing-system/internal/services"
	"licensing-system/pkg/middleware"
)

func runUserRouter(secureGroup *echo.Group, userService services.UserServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	userCtrl := controllers.NewUserController(userService, logger)

	users := secureGroup.Group("/users", authMW.Require(authz.UsersManage))
	users.GET("", userCtrl.GetUsers)
	users.GET("/:id", userCtrl.FindUser)
	users.POST("", userCtrl.CreateUser)
	users.PUT("/:id", userCtrl.UpdateUser)
	users.DELETE("/:id", userCtrl.DeactivateUser)
}
