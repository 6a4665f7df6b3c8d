// Файл: main.go

package main

import (
	"context"
	"log"
	"net/http"

	"asset-tracker/internal/repositories"
	"asset-tracker/internal/routes"
	"asset-tracker/internal/sheets"
	"asset-tracker/pkg/config"
	"asset-tracker/pkg/customvalidator"
	"asset-tracker/pkg/database/postgresql"
	apperrors "asset-tracker/pkg/errors"
	applogger "asset-tracker/pkg/logger"
	appmiddleware "asset-tracker/pkg/middleware"
	"asset-tracker/pkg/service"
	"asset-tracker/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. Конфиг. Без обязательных параметров не стартуем.
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Некорректная конфигурация:\n%v", err)
	}

	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.FilePath)
	defer func() { _ = logger.Sync() }()

	e := echo.New()
	e.HideBanner = true

	// 2. Middleware
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(appmiddleware.InjectLogger(logger))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	// 3. Валидатор
	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	ctx := context.Background()

	// 4. Postgres: пользователи
	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("не удалось подключиться к Postgres", zap.Error(err))
	}
	defer dbConn.Close()

	if err := postgresql.Migrate(dbConn); err != nil {
		logger.Fatal("ошибка миграций", zap.Error(err))
	}

	// 5. Кеш справочников
	var cacheRepo repositories.CacheRepositoryInterface
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
		}
		defer redisClient.Close()
		cacheRepo = repositories.NewRedisCacheRepository(redisClient, "asset-tracker:")
	default:
		cacheRepo = repositories.NewMemoryCacheRepository(utils.SystemClock{})
	}

	// 6. Хранилище листов
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("не удалось открыть хранилище листов", zap.Error(err), zap.String("backend", cfg.Sheets.Backend))
	}

	// 7. Роуты
	jwtSvc := service.NewJWTService(cfg.Session.Secret, cfg.Session.TTL)
	routes.InitRouter(e, routes.Dependencies{
		Store:     sheets.NewRetryingStore(store, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger.Named("sheets")),
		UserRepo:  repositories.NewUserRepository(dbConn, logger.Named("users")),
		CacheRepo: cacheRepo,
		JWT:       jwtSvc,
		Clock:     utils.SystemClock{},
		Cfg:       cfg,
	}, &routes.Loggers{
		Main:  logger,
		Auth:  logger.Named("auth"),
		Asset: logger.Named("asset"),
		Sync:  logger.Named("sync"),
		User:  logger.Named("user"),
	})

	// 8. Запуск
	logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port), zap.String("sheets_backend", cfg.Sheets.Backend))
	if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (sheets.Store, error) {
	if cfg.Sheets.Backend == config.SheetsBackendWorkbook {
		return sheets.NewWorkbookStore(cfg.Sheets.WorkbookPath, logger.Named("workbook"))
	}
	creds, err := cfg.GoogleCredentials()
	if err != nil {
		return nil, err
	}
	return sheets.NewGoogleStore(ctx, creds, cfg.Sheets.SpreadsheetID, cfg.Sheets.RequestsPerMinute, logger.Named("google"))
}
