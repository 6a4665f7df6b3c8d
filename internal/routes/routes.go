package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-tracker/internal/cache"
	"asset-tracker/internal/controllers"
	"asset-tracker/internal/repositories"
	"asset-tracker/internal/services"
	"asset-tracker/internal/sheets"
	"asset-tracker/pkg/config"
	"asset-tracker/pkg/middleware"
	"asset-tracker/pkg/service"
	"asset-tracker/pkg/utils"
)

type Loggers struct {
	Main  *zap.Logger
	Auth  *zap.Logger
	Asset *zap.Logger
	Sync  *zap.Logger
	User  *zap.Logger
}

// Dependencies - внешние ресурсы, собранные в main: хранилище листов,
// репозиторий пользователей и бэкенд кеша.
type Dependencies struct {
	Store     sheets.Store
	UserRepo  repositories.UserRepositoryInterface
	CacheRepo repositories.CacheRepositoryInterface
	JWT       service.JWTService
	Clock     utils.Clock
	Cfg       *config.Config
}

func InitRouter(e *echo.Echo, deps Dependencies, loggers *Loggers) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(deps.JWT, deps.Cfg.Session.CookieName, loggers.Auth)
	refCache := cache.New(deps.CacheRepo, deps.Cfg.Cache.TTL, loggers.Main)

	// --- 1. РЕПОЗИТОРИИ ---
	assetRepo := repositories.NewAssetRepository(deps.Store, loggers.Asset)
	referenceRepo := repositories.NewReferenceRepository(deps.Store, loggers.Asset)
	auditRepo := repositories.NewAuditLogRepository(deps.Store, loggers.Asset)

	// --- 2. СЕРВИСЫ ---
	referenceService := services.NewReferenceService(referenceRepo, refCache, loggers.Asset)
	syncService := services.NewSyncService(assetRepo, referenceService, deps.Clock, loggers.Sync)
	assetService := services.NewAssetService(assetRepo, auditRepo, referenceService, syncService, deps.Clock, loggers.Asset)
	authService := services.NewAuthService(deps.UserRepo, loggers.Auth)
	userService := services.NewUserService(deps.UserRepo, loggers.User)

	// --- 3. КОНТРОЛЛЕРЫ ---
	authCtrl := controllers.NewAuthController(authService, deps.JWT, deps.Cfg.Session.CookieName, deps.Cfg.Session.SecureCookie, loggers.Auth)
	assetCtrl := controllers.NewAssetController(assetService, loggers.Asset)
	dashboardCtrl := controllers.NewDashboardController(assetService, loggers.Asset)
	referenceCtrl := controllers.NewReferenceController(referenceService, loggers.Asset)
	relocationCtrl := controllers.NewRelocationController(assetService, loggers.Asset)
	disposalCtrl := controllers.NewDisposalController(assetService, loggers.Asset)
	syncCtrl := controllers.NewSyncController(syncService, loggers.Sync)
	userCtrl := controllers.NewUserController(userService, loggers.User)

	// --- 4. РОУТЕРЫ ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	runAuthRouter(api, authCtrl, authMW)

	secureGroup := api.Group("", authMW.Auth)
	runAssetRouter(secureGroup, assetCtrl, authMW)
	runDashboardRouter(secureGroup, dashboardCtrl)
	runReferenceRouter(secureGroup, referenceCtrl, authMW)
	runRelocationRouter(secureGroup, relocationCtrl)
	runDisposalRouter(secureGroup, disposalCtrl, authMW)
	runSyncRouter(secureGroup, syncCtrl, authMW)
	runUserRouter(secureGroup, userCtrl, authMW)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
}
