// Файл: internal/controllers/sync_controller.go
package controllers

import (
	"net/http"

	"asset-tracker/internal/services"
	apperrors "asset-tracker/pkg/errors"
	"asset-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// syncTimeoutSeconds ограничивает один проход синхронизации вместе с повторами.
const syncTimeoutSeconds = 120

type SyncController struct {
	syncService services.SyncServiceInterface
	logger      *zap.Logger
}

func NewSyncController(service services.SyncServiceInterface, logger *zap.Logger) *SyncController {
	return &SyncController{
		syncService: service,
		logger:      logger.Named("sync_controller"),
	}
}

// HandleSyncAll выполняет синхронизацию в рамках запроса: фоновых задач нет.
func (c *SyncController) HandleSyncAll(ctx echo.Context) error {
	c.logger.Info("Запуск синхронизации", zap.String("by", utils.GetUsernameFromCtx(ctx.Request().Context())))

	reqCtx, cancel := utils.ContextWithTimeout(ctx, syncTimeoutSeconds)
	defer cancel()

	res, err := c.syncService.Run(reqCtx)
	if err != nil {
		apiErr := apperrors.NewHttpError(http.StatusServiceUnavailable, res.Message, err, map[string]interface{}{"result": res})
		return utils.ErrorResponse(ctx, apiErr, c.logger)
	}
	if !res.Success {
		apiErr := apperrors.NewHttpError(http.StatusUnprocessableEntity, res.Message, nil, map[string]interface{}{"result": res})
		return utils.ErrorResponse(ctx, apiErr, c.logger)
	}
	return utils.SuccessResponse(ctx, res, res.Message, http.StatusOK)
}

func (c *SyncController) LastResult(ctx echo.Context) error {
	return utils.SuccessResponse(ctx, c.syncService.LastResult(), "Результат последней синхронизации", http.StatusOK)
}
