package routes

import (
	"asset-tracker/internal/controllers"
	"asset-tracker/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runReferenceRouter(secureGroup *echo.Group, referenceCtrl *controllers.ReferenceController, authMW *middleware.AuthMiddleware) {
	refs := secureGroup.Group("/references")
	{
		refs.GET("", referenceCtrl.GetReferenceLists)
		refs.GET("/locations", referenceCtrl.GetLocationRoomMap)

		refs.POST("/types", referenceCtrl.AddType, authMW.RequireAdmin)
		refs.POST("/companies", referenceCtrl.AddCompany, authMW.RequireAdmin)
		refs.POST("/owners", referenceCtrl.AddOwner, authMW.RequireAdmin)
		refs.POST("/locations", referenceCtrl.AddLocation, authMW.RequireAdmin)
	}
}
