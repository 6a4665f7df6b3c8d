package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-tracker/internal/services"
	"asset-tracker/pkg/utils"
)

// DashboardController отдаёт сводку по активам: количество по категориям и годам.
type DashboardController struct {
	assetService services.AssetServiceInterface
	logger       *zap.Logger
}

func NewDashboardController(assetService services.AssetServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		assetService: assetService,
		logger:       logger,
	}
}

func (ctrl *DashboardController) GetDashboardStats(c echo.Context) error {
	stats, err := ctrl.assetService.Dashboard(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, stats, "Статистика для дашборда получена", http.StatusOK)
}
