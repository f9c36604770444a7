package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/repositories"
	"repair-system/internal/services"
	"repair-system/pkg/config"
	"repair-system/pkg/middleware"
	"repair-system/pkg/service"
)

// InitRouter wires repositories, services and controllers and mounts every
// route group under /api. All construction happens here so each layer stays
// free of globals.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.Config,
) {
	api := e.Group("/api")

	txManager := repositories.NewTxManager(dbConn)

	userRepo := repositories.NewUserRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	categoryRepo := repositories.NewEquipmentCategoryRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	requestRepo := repositories.NewRepairRequestRepository(dbConn, logger)
	historyRepo := repositories.NewRepairHistoryRepository(dbConn)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)

	profileCache := services.NewProfileCacheService(userRepo, cacheRepo, logger, cfg.Redis.ProfileCacheTTL)
	authService := services.NewAuthService(txManager, userRepo, jwtSvc, logger)
	userService := services.NewUserService(userRepo, profileCache, logger)
	categoryService := services.NewEquipmentCategoryService(categoryRepo, logger)
	equipmentService := services.NewEquipmentService(txManager, equipmentRepo, requestRepo, historyRepo, logger)
	requestService := services.NewRepairRequestService(txManager, requestRepo, historyRepo, userRepo, equipmentRepo, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, equipmentRepo, userRepo, logger)
	reportService := services.NewReportService(requestRepo, logger)

	authMW := middleware.NewAuthMiddleware(jwtSvc, profileCache, logger)
	secure := api.Group("", authMW.Auth)

	runAuthRouter(api, authService, logger)
	runUserRouter(secure, userService, logger)
	runEquipmentCategoryRouter(secure, categoryService, logger)
	runEquipmentRouter(secure, equipmentService, logger)
	runRepairRequestRouter(secure, requestService, logger)
	runDashboardRouter(secure, dashboardService, logger)
	runReportRouter(secure, reportService, logger)
}
