package controllers

import (
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

type MechanicController struct {
	mechanicService services.MechanicServiceInterface
	logger          *zap.Logger
}

func NewMechanicController(mechanicService services.MechanicServiceInterface, logger *zap.Logger) *MechanicController {
	return &MechanicController{
		mechanicService: mechanicService,
		logger:          logger,
	}
}

func (ctrl *MechanicController) GetMechanics(c echo.Context) error {
	page := utils.ParsePaginationParams(c.QueryParams())

	mechanics, err := ctrl.mechanicService.GetMechanics(c.Request().Context(), page)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, mechanics)
}

func (ctrl *MechanicController) FindMechanic(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	mechanic, err := ctrl.mechanicService.FindMechanic(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, mechanic)
}

func (ctrl *MechanicController) CreateMechanic(c echo.Context) error {
	var payload dto.CreateMechanicDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	mechanic, err := ctrl.mechanicService.CreateMechanic(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusCreated, mechanic)
}

func (ctrl *MechanicController) UpdateMechanic(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	var payload dto.UpdateMechanicDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	mechanic, err := ctrl.mechanicService.UpdateMechanic(c.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, mechanic)
}

func (ctrl *MechanicController) DeleteMechanic(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	if err := ctrl.mechanicService.DeleteMechanic(c.Request().Context(), id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Mechanic id %d, successfully deleted.", id),
	})
}

func (ctrl *MechanicController) GetMostActive(c echo.Context) error {
	mechanics, err := ctrl.mechanicService.GetMostActive(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, mechanics)
}
