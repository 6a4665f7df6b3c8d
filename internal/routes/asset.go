package routes

import (
	"asset-tracker/internal/controllers"
	"asset-tracker/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runAssetRouter(secureGroup *echo.Group, assetCtrl *controllers.AssetController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/assets", assetCtrl.GetAssets)
	secureGroup.GET("/assets/export", assetCtrl.Export)
	secureGroup.GET("/assets/:id", assetCtrl.FindAsset)
	secureGroup.POST("/assets", assetCtrl.CreateAsset)
	secureGroup.POST("/assets/:id/status", assetCtrl.ChangeStatus)
	secureGroup.DELETE("/assets/:id", assetCtrl.DeleteAsset, authMW.RequireAdmin)
}

func runDashboardRouter(secureGroup *echo.Group, dashboardCtrl *controllers.DashboardController) {
	secureGroup.GET("/dashboard", dashboardCtrl.GetDashboardStats)
}
