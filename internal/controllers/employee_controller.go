package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/services"
	"github.com/AntonZhikin/OfficeDepartment/pkg/utils"
)

type EmployeeController struct {
	service services.EmployeeServiceInterface
	logger  *zap.Logger
}

func NewEmployeeController(service services.EmployeeServiceInterface, logger *zap.Logger) *EmployeeController {
	return &EmployeeController{service: service, logger: logger}
}

func (ctrl *EmployeeController) List(c echo.Context) error {
	var filterDTO dto.EmployeeFilterDTO
	if err := c.Bind(&filterDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	employees, err := ctrl.service.List(c.Request().Context(), filterDTO)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, employees, "Сотрудники получены", http.StatusOK)
}

func (ctrl *EmployeeController) GetByID(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	employee, err := ctrl.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, employee, "Сотрудник получен", http.StatusOK)
}

func (ctrl *EmployeeController) Create(c echo.Context) error {
	var createDTO dto.CreateEmployeeDTO
	if err := c.Bind(&createDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&createDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	employee, err := ctrl.service.Create(c.Request().Context(), createDTO, mutationContext(c))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, employee, "Сотрудник создан", http.StatusCreated)
}

func (ctrl *EmployeeController) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var updateDTO dto.UpdateEmployeeDTO
	if err := c.Bind(&updateDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&updateDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	employee, err := ctrl.service.Update(c.Request().Context(), id, updateDTO, mutationContext(c))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, employee, "Сотрудник обновлён", http.StatusOK)
}

func (ctrl *EmployeeController) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.service.Delete(c.Request().Context(), id, mutationContext(c)); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.NoContent(http.StatusNoContent)
}
