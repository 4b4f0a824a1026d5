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
	"mechanic-system/pkg/service"
	"mechanic-system/pkg/utils"
)

type CustomerController struct {
	customerService services.CustomerServiceInterface
	jwtService      service.JWTService
	logger          *zap.Logger
}

func NewCustomerController(customerService services.CustomerServiceInterface, jwtService service.JWTService, logger *zap.Logger) *CustomerController {
	return &CustomerController{
		customerService: customerService,
		jwtService:      jwtService,
		logger:          logger,
	}
}

func (ctrl *CustomerController) GetCustomers(c echo.Context) error {
	page := utils.ParsePaginationParams(c.QueryParams())

	customers, err := ctrl.customerService.GetCustomers(c.Request().Context(), page)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, customers)
}

func (ctrl *CustomerController) FindCustomer(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	customer, err := ctrl.customerService.FindCustomer(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, customer)
}

func (ctrl *CustomerController) CreateCustomer(c echo.Context) error {
	var payload dto.CreateCustomerDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	customer, err := ctrl.customerService.CreateCustomer(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusCreated, customer)
}

func (ctrl *CustomerController) UpdateCustomer(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	var payload dto.UpdateCustomerDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	customer, err := ctrl.customerService.UpdateCustomer(c.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, customer)
}

func (ctrl *CustomerController) DeleteCustomer(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	if err := ctrl.customerService.DeleteCustomer(c.Request().Context(), id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Customer id %d, successfully deleted.", id),
	})
}

func (ctrl *CustomerController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	customer, err := ctrl.customerService.Login(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	token, err := ctrl.jwtService.GenerateToken(customer.ID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.JSON(http.StatusOK, dto.LoginResponseDTO{
		Status:    "success",
		Message:   "Successfully logged in",
		AuthToken: token,
	})
}
