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

type RelocationController struct {
	assetService services.AssetServiceInterface
	logger       *zap.Logger
}

func NewRelocationController(assetService services.AssetServiceInterface, logger *zap.Logger) *RelocationController {
	return &RelocationController{assetService: assetService, logger: logger}
}

func (c *RelocationController) Search(ctx echo.Context) error {
	assets, err := c.assetService.SearchByLocation(ctx.Request().Context(), ctx.QueryParam("location"), ctx.QueryParam("room"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, assets, "Активы в помещении найдены", http.StatusOK, uint64(len(assets)))
}

func (c *RelocationController) Move(ctx echo.Context) error {
	var payload dto.RelocateAssetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	asset, err := c.assetService.Relocate(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("Ошибка при перемещении актива", zap.String("id", payload.AssetID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, asset, "Актив перемещён", http.StatusOK)
}
