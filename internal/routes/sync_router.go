// Файл: internal/routes/sync_router.go
package routes

import (
	"asset-tracker/internal/controllers"
	"asset-tracker/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runSyncRouter(secureGroup *echo.Group, syncCtrl *controllers.SyncController, authMW *middleware.AuthMiddleware) {
	syncGroup := secureGroup.Group("/sync")

	syncGroup.POST("", syncCtrl.HandleSyncAll, authMW.RequireAdmin)
	syncGroup.GET("/last", syncCtrl.LastResult)
}
