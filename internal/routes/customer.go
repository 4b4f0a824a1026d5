package routes

import (
	"github.com/labstack/echo/v4"

	"mechanic-system/internal/controllers"
)

func runCustomerRouter(e *echo.Echo, ctrl *controllers.CustomerController) {
	e.GET("/customers", ctrl.GetCustomers)
	e.GET("/customers/:id", ctrl.FindCustomer)
	e.POST("/customers", ctrl.CreateCustomer)
	e.PUT("/customers/:id", ctrl.UpdateCustomer)
	e.DELETE("/customers/:id", ctrl.DeleteCustomer)
	e.POST("/customers/login", ctrl.Login)
}
