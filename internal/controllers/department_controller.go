package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/services"
	"github.com/AntonZhikin/OfficeDepartment/pkg/utils"
)

type DepartmentController struct {
	service services.DepartmentServiceInterface
	logger  *zap.Logger
}

func NewDepartmentController(service services.DepartmentServiceInterface, logger *zap.Logger) *DepartmentController {
	return &DepartmentController{service: service, logger: logger}
}

func (ctrl *DepartmentController) List(c echo.Context) error {
	var filterDTO dto.DepartmentFilterDTO
	if err := c.Bind(&filterDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	departments, err := ctrl.service.List(c.Request().Context(), filterDTO)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, departments, "Отделы получены", http.StatusOK)
}

func (ctrl *DepartmentController) GetByID(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	department, err := ctrl.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, department, "Отдел получен", http.StatusOK)
}

func (ctrl *DepartmentController) Create(c echo.Context) error {
	var createDTO dto.CreateDepartmentDTO
	if err := c.Bind(&createDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&createDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	department, err := ctrl.service.Create(c.Request().Context(), createDTO, mutationContext(c))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, department, "Отдел создан", http.StatusCreated)
}

func (ctrl *DepartmentController) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var updateDTO dto.UpdateDepartmentDTO
	if err := c.Bind(&updateDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&updateDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	department, err := ctrl.service.Update(c.Request().Context(), id, updateDTO, mutationContext(c))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, department, "Отдел обновлён", http.StatusOK)
}

func (ctrl *DepartmentController) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.service.Delete(c.Request().Context(), id, mutationContext(c)); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.NoContent(http.StatusNoContent)
}
