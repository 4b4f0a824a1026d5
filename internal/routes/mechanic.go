package routes

import (
	"github.com/labstack/echo/v4"

	"mechanic-system/internal/controllers"
)

func runMechanicRouter(e *echo.Echo, ctrl *controllers.MechanicController) {
	e.GET("/mechanics", ctrl.GetMechanics)
	e.GET("/mechanics/most-active", ctrl.GetMostActive)
	e.GET("/mechanics/:id", ctrl.FindMechanic)
	e.POST("/mechanics", ctrl.CreateMechanic)
	e.PUT("/mechanics/:id", ctrl.UpdateMechanic)
	e.DELETE("/mechanics/:id", ctrl.DeleteMechanic)
}
