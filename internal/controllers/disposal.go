package controllers

import (
	"net/http"

	"asset-tracker/internal/dto"
	"asset-tracker/internal/services"
	apperrors "asset-tracker/pkg/errors"
	"asset-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DisposalController struct {
	assetService services.AssetServiceInterface
	logger       *zap.Logger
}

func NewDisposalController(assetService services.AssetServiceInterface, logger *zap.Logger) *DisposalController {
	return &DisposalController{assetService: assetService, logger: logger}
}

func (c *DisposalController) GetCandidates(ctx echo.Context) error {
	assets, err := c.assetService.GetDisposalCandidates(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, assets, "Активы к списанию получены", http.StatusOK, uint64(len(assets)))
}

func (c *DisposalController) Dispose(ctx echo.Context) error {
	id := ctx.Param("id")
	var payload dto.DisposeAssetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	asset, err := c.assetService.Dispose(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("Ошибка при списании актива", zap.String("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, asset, "Актив списан", http.StatusOK)
}

func (c *DisposalController) GetLogs(ctx echo.Context) error {
	logs, err := c.assetService.GetDisposalLogs(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, logs, "Журнал списаний получен", http.StatusOK, uint64(len(logs)))
}
