package routes

import (
	"github.com/labstack/echo/v4"

	"mechanic-system/internal/controllers"
	"mechanic-system/pkg/middleware"
)

func runInventoryRouter(e *echo.Echo, ctrl *controllers.InventoryController, authMW *middleware.AuthMiddleware) {
	inventory := e.Group("/inventory", authMW.Auth)

	inventory.GET("", ctrl.GetParts)
	inventory.GET("/:id", ctrl.FindPart)
	inventory.POST("", ctrl.CreatePart)
	inventory.PUT("/:id", ctrl.UpdatePart)
	inventory.DELETE("/:id", ctrl.DeletePart)
}
