package controllers

import (
	"fmt"
	"net/http"
	"time"

	"asset-tracker/internal/dto"
	"asset-tracker/internal/services"
	apperrors "asset-tracker/pkg/errors"
	"asset-tracker/pkg/types"
	"asset-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AssetController struct {
	assetService services.AssetServiceInterface
	logger       *zap.Logger
}

func NewAssetController(assetService services.AssetServiceInterface, logger *zap.Logger) *AssetController {
	return &AssetController{
		assetService: assetService,
		logger:       logger,
	}
}

func (c *AssetController) GetAssets(ctx echo.Context) error {
	var filter types.AssetFilter
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверные параметры фильтра"), c.logger)
	}

	assets, err := c.assetService.GetAssets(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка активов", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	total := uint64(len(assets))
	if limit, offset, _, paged := utils.ParsePaginationParams(ctx.QueryParams()); paged {
		assets = utils.Paginate(assets, limit, offset)
	}
	return utils.SuccessResponse(ctx, assets, "Список активов успешно получен", http.StatusOK, total)
}

func (c *AssetController) FindAsset(ctx echo.Context) error {
	id := ctx.Param("id")
	asset, err := c.assetService.FindAsset(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, asset, "Актив успешно найден", http.StatusOK)
}

func (c *AssetController) CreateAsset(ctx echo.Context) error {
	var payload dto.CreateAssetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	asset, err := c.assetService.CreateAsset(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("Ошибка при создании актива", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, asset, "Актив успешно добавлен", http.StatusCreated)
}

func (c *AssetController) ChangeStatus(ctx echo.Context) error {
	id := ctx.Param("id")
	var payload dto.ChangeStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	asset, err := c.assetService.ChangeStatus(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("Ошибка при смене статуса", zap.String("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, asset, fmt.Sprintf("Статус актива %s изменён на %s", id, payload.Status), http.StatusOK)
}

func (c *AssetController) DeleteAsset(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.assetService.DeleteAsset(ctx.Request().Context(), id); err != nil {
		c.logger.Error("Ошибка при удалении актива", zap.String("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Актив успешно удалён", http.StatusOK)
}

func (c *AssetController) Export(ctx echo.Context) error {
	status := ctx.QueryParam("status")
	buf, err := c.assetService.ExportAssets(ctx.Request().Context(), status)
	if err != nil {
		c.logger.Error("Ошибка при выгрузке активов", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileName := fmt.Sprintf("assets_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
