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

type ReferenceController struct {
	referenceService services.ReferenceServiceInterface
	logger           *zap.Logger
}

func NewReferenceController(referenceService services.ReferenceServiceInterface, logger *zap.Logger) *ReferenceController {
	return &ReferenceController{referenceService: referenceService, logger: logger}
}

func (c *ReferenceController) GetReferenceLists(ctx echo.Context) error {
	lists, err := c.referenceService.GetReferenceLists(ctx.Request().Context())
	if err != nil {
		c.logger.Error("Ошибка при загрузке справочников", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, lists, "Справочники получены", http.StatusOK)
}

func (c *ReferenceController) GetLocationRoomMap(ctx echo.Context) error {
	rooms, err := c.referenceService.GetLocationRoomMap(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rooms, "Список помещений получен", http.StatusOK)
}

// bindAndValidate - общий разбор тела для POST справочников.
func (c *ReferenceController) bindAndValidate(ctx echo.Context, payload interface{}) error {
	if err := ctx.Bind(payload); err != nil {
		return apperrors.NewBadRequestError("Неверный формат данных")
	}
	return ctx.Validate(payload)
}

func (c *ReferenceController) respondCode(ctx echo.Context, res *dto.ReferenceCodeDTO) error {
	code, message := http.StatusOK, "Запись уже существует"
	if res.Created {
		code, message = http.StatusCreated, "Запись добавлена в справочник"
	}
	return utils.SuccessResponse(ctx, res, message, code)
}

func (c *ReferenceController) AddType(ctx echo.Context) error {
	var payload dto.AddTypeDTO
	if err := c.bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.referenceService.AddTypeIfNotExists(ctx.Request().Context(), payload.Type, payload.Category)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.respondCode(ctx, res)
}

func (c *ReferenceController) AddCompany(ctx echo.Context) error {
	var payload dto.AddCompanyDTO
	if err := c.bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.referenceService.AddCompanyIfNotExists(ctx.Request().Context(), payload.Company, payload.Code)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.respondCode(ctx, res)
}

func (c *ReferenceController) AddOwner(ctx echo.Context) error {
	var payload dto.AddOwnerDTO
	if err := c.bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.referenceService.AddOwnerIfNotExists(ctx.Request().Context(), payload.Owner, payload.Code)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.respondCode(ctx, res)
}

func (c *ReferenceController) AddLocation(ctx echo.Context) error {
	var payload dto.AddLocationDTO
	if err := c.bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	added, err := c.referenceService.AddLocationIfNotExists(ctx.Request().Context(), payload.Location, payload.Room)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if !added {
		return utils.SuccessResponse(ctx, payload, "Помещение уже есть в справочнике", http.StatusOK)
	}
	return utils.SuccessResponse(ctx, payload, "Помещение добавлено в справочник", http.StatusCreated)
}
