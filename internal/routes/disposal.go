package routes

import (
	"asset-tracker/internal/controllers"
	"asset-tracker/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runDisposalRouter(secureGroup *echo.Group, disposalCtrl *controllers.DisposalController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/disposal", disposalCtrl.GetCandidates)
	secureGroup.GET("/disposal/logs", disposalCtrl.GetLogs)
	secureGroup.POST("/disposal/:id/dispose", disposalCtrl.Dispose, authMW.RequireAdmin)
}
