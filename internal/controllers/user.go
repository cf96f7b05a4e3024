package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"licensing-system/internal/dto"
	"licensing-system/internal/entities"
	"licensing-system/internal/services"
	"licensing-system/pkg/api"
	"licensing-system/pkg/utils"
)

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	filter := utils.ParseFilter(ctx.QueryParams())

	users, total, err := c.userService.GetUsers(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	list := make([]dto.UserPublicDTO, len(users))
	for i := range users {
		list[i] = dto.NewUserPublicDTO(&users[i])
	}
	return api.SuccessList(ctx, "Users", list, total, filter.Page, filter.Limit)
}

func (c *UserController) FindUser(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	user, err := c.userService.FindUser(ctx.Request().Context(), id)
	return c.respondUser(ctx, http.StatusOK, "User", user, err)
}

func (c *UserController) CreateUser(ctx echo.Context) error {
	var payload dto.CreateUserDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	user, err := c.userService.CreateUser(ctx.Request().Context(), payload)
	return c.respondUser(ctx, http.StatusCreated, "User created", user, err)
}

func (c *UserController) UpdateUser(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateUserDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	user, err := c.userService.UpdateUser(ctx.Request().Context(), id, payload)
	return c.respondUser(ctx, http.StatusOK, "User updated", user, err)
}

func (c *UserController) DeactivateUser(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.userService.DeactivateUser(ctx.Request().Context(), id); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne[any](ctx, http.StatusOK, "User deactivated", nil)
}

func (c *UserController) respondUser(ctx echo.Context, code int, message string, user *entities.User, err error) error {
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, code, message, dto.NewUserPublicDTO(user))
}
