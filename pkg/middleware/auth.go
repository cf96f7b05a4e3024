package middleware

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"licensing-system/internal/authz"
	"licensing-system/pkg/api"
	apperrors "licensing-system/pkg/errors"
	"licensing-system/pkg/service"
	"licensing-system/pkg/utils"
)

// ActorResolver loads the current role and province of an authenticated user.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID uuid.UUID) (authz.Actor, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	resolver   ActorResolver
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, resolver ActorResolver, gatekeeper *authz.Gatekeeper, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		resolver:   resolver,
		gatekeeper: gatekeeper,
		logger:     logger,
	}
}

// Auth validates the bearer access token and stores the resolved actor in the request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return api.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: malformed Authorization header")
			return api.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: token validation failed", zap.Error(err))
			return api.ErrorResponse(c, err, m.logger)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: refresh token used for access", zap.String("userID", claims.UserID.String()))
			return api.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		ctx := c.Request().Context()
		actor, err := m.resolver.ResolveActor(ctx, claims.UserID)
		if err != nil {
			return api.ErrorResponse(c, err, m.logger)
		}
		if !actor.IsActive {
			return api.ErrorResponse(c, apperrors.ErrUserInactive, m.logger)
		}

		c.SetRequest(c.Request().WithContext(utils.WithActor(ctx, actor)))
		return next(c)
	}
}

// Require rejects actors whose role lacks the permission.
func (m *AuthMiddleware) Require(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := utils.GetActorFromCtx(c.Request().Context())
			if err != nil {
				return api.ErrorResponse(c, err, m.logger)
			}
			if !m.gatekeeper.Can(actor, permission, nil) {
				m.logger.Info("AuthMiddleware: permission denied",
					zap.String("userID", actor.ID.String()),
					zap.String("role", string(actor.Role)),
					zap.String("permission", permission),
				)
				return api.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			return next(c)
		}
	}
}
