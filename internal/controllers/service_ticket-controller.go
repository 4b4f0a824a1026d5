package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"mechanic-system/internal/dto"
	"mechanic-system/internal/services"
	apperrors "mechanic-system/pkg/errors"
	"mechanic-system/pkg/utils"
)

type ServiceTicketController struct {
	ticketService services.ServiceTicketServiceInterface
	logger        *zap.Logger
}

func NewServiceTicketController(ticketService services.ServiceTicketServiceInterface, logger *zap.Logger) *ServiceTicketController {
	return &ServiceTicketController{
		ticketService: ticketService,
		logger:        logger,
	}
}

func (ctrl *ServiceTicketController) GetTickets(c echo.Context) error {
	page := utils.ParsePaginationParams(c.QueryParams())

	tickets, err := ctrl.ticketService.GetTickets(c.Request().Context(), page)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, tickets)
}

func (ctrl *ServiceTicketController) GetMyTickets(c echo.Context) error {
	customerID, err := utils.CustomerIDFromContext(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	tickets, err := ctrl.ticketService.GetMyTickets(c.Request().Context(), customerID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, tickets)
}

func (ctrl *ServiceTicketController) FindTicket(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	ticket, err := ctrl.ticketService.FindTicket(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, ticket)
}

func (ctrl *ServiceTicketController) CreateTicket(c echo.Context) error {
	var payload dto.CreateServiceTicketDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	ticket, err := ctrl.ticketService.CreateTicket(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusCreated, ticket)
}

func (ctrl *ServiceTicketController) UpdateTicket(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	var payload dto.UpdateServiceTicketDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	ticket, err := ctrl.ticketService.UpdateTicket(c.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, ticket)
}

func (ctrl *ServiceTicketController) DeleteTicket(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	if err := ctrl.ticketService.DeleteTicket(c.Request().Context(), id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Service ticket id %d, successfully deleted.", id),
	})
}

func (ctrl *ServiceTicketController) AssignMechanic(c echo.Context) error {
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	mechanicID, err := strconv.ParseUint(c.Param("mechanic_id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	ticket, already, err := ctrl.ticketService.AssignMechanic(c.Request().Context(), ticketID, mechanicID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if already {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Mechanic already assigned to this ticket.",
		})
	}
	return c.JSON(http.StatusOK, ticket)
}

func (ctrl *ServiceTicketController) RemoveMechanic(c echo.Context) error {
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	mechanicID, err := strconv.ParseUint(c.Param("mechanic_id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	ticket, err := ctrl.ticketService.RemoveMechanic(c.Request().Context(), ticketID, mechanicID)
	if err != nil {
		// Removing a mechanic that was never assigned reports a message
		// body rather than an error body.
		if errors.Is(err, apperrors.ErrMechanicNotAssigned) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": "Mechanic is not assigned to this ticket.",
			})
		}
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, ticket)
}

func (ctrl *ServiceTicketController) AddPart(c echo.Context) error {
	actorID, err := utils.CustomerIDFromContext(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	partID, err := strconv.ParseUint(c.Param("part_id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	ticket, err := ctrl.ticketService.AddPart(c.Request().Context(), actorID, ticketID, partID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, ticket)
}
