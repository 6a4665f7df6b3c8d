package routes

import (
	"asset-tracker/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runRelocationRouter(secureGroup *echo.Group, relocationCtrl *controllers.RelocationController) {
	secureGroup.GET("/relocation/search", relocationCtrl.Search)
	secureGroup.POST("/relocation/move", relocationCtrl.Move)
}
