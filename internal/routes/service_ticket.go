package routes

import (
	"github.com/labstack/echo/v4"

	"mechanic-system/internal/controllers"
	"mechanic-system/pkg/middleware"
)

func runServiceTicketRouter(
	e *echo.Echo,
	ctrl *controllers.ServiceTicketController,
	authMW *middleware.AuthMiddleware,
	cacheMW *middleware.ResponseCacheMiddleware,
	rateLimitMW *middleware.RateLimitMiddleware,
) {
	e.GET("/service-tickets", ctrl.GetTickets, cacheMW.Cache)
	e.GET("/service-tickets/my-tickets", ctrl.GetMyTickets, authMW.Auth)
	e.GET("/service-tickets/:id", ctrl.FindTicket)
	e.POST("/service-tickets", ctrl.CreateTicket, authMW.Auth)
	e.PUT("/service-tickets/:id", ctrl.UpdateTicket)
	e.DELETE("/service-tickets/:id", ctrl.DeleteTicket)

	e.PUT("/service-tickets/:id/assign-mechanic/:mechanic_id", ctrl.AssignMechanic, rateLimitMW.Limit)
	e.PUT("/service-tickets/:id/remove-mechanic/:mechanic_id", ctrl.RemoveMechanic)
	e.PUT("/service-tickets/:id/add-part/:part_id", ctrl.AddPart, authMW.Auth)
}
