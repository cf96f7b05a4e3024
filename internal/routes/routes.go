package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"licensing-system/internal/authz"
	"licensing-system/internal/listeners"
	"licensing-system/internal/repositories"
	"licensing-system/internal/services"
	"licensing-system/pkg/config"
	"licensing-system/pkg/eventbus"
	"licensing-system/pkg/middleware"
	"licensing-system/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, bus *eventbus.Bus, cfg *config.Config, logger *zap.Logger) {
	logger.Info("InitRouter: building routes")

	// --- shared components ---
	api := e.Group("/api")
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	gatekeeper := authz.NewGatekeeper()
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)

	// --- repositories ---
	userRepo := repositories.NewUserRepository(dbConn, logger)
	referenceRepo := repositories.NewReferenceRepository(dbConn, logger)
	requestRepo := repositories.NewRequestRepository(dbConn, logger)
	sequenceRepo := repositories.NewRequestSequenceRepository()
	actionLogRepo := repositories.NewActionLogRepository(dbConn, logger)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)
	reportRepo := repositories.NewReportRepository(dbConn, logger)

	// --- services ---
	identity := services.NewIdentityService(userRepo, cacheRepo, cfg.Cache.IdentityTTL, logger)
	authService := services.NewAuthService(userRepo, referenceRepo, cacheRepo, jwtSvc, logger, cfg.Auth)
	userService := services.NewUserService(userRepo, referenceRepo, identity, logger)
	referenceService := services.NewReferenceService(referenceRepo, logger)
	actionLogService := services.NewActionLogService(actionLogRepo, logger)
	requestService := services.NewRequestService(
		txManager, requestRepo, sequenceRepo, referenceRepo, actionLogService, gatekeeper, bus, logger,
	)
	dashboardService := services.NewDashboardService(dashboardRepo, cacheRepo, cfg.Cache.StatsTTL, logger)
	reportService := services.NewReportService(reportRepo, gatekeeper, logger)

	listeners.NewRequestListener(dashboardService, logger).Register(bus)

	// --- routers ---
	authMW := middleware.NewAuthMiddleware(jwtSvc, identity, gatekeeper, logger)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authService, logger)
	runReferenceRouter(api, secureGroup, referenceService, logger)
	runRequestRouter(secureGroup, requestService, logger)
	runDashboardRouter(secureGroup, dashboardService, logger)
	runReportRouter(secureGroup, reportService, logger, authMW)
	runUserRouter(secureGroup, userService, logger, authMW)

	logger.Info("InitRouter: routes ready")
}
