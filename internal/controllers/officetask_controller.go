package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/services"
	"github.com/AntonZhikin/OfficeDepartment/pkg/utils"
)

type OfficeTaskController struct {
	service services.OfficeTaskServiceInterface
	logger  *zap.Logger
}

func NewOfficeTaskController(service services.OfficeTaskServiceInterface, logger *zap.Logger) *OfficeTaskController {
	return &OfficeTaskController{service: service, logger: logger}
}

func (ctrl *OfficeTaskController) List(c echo.Context) error {
	var filterDTO dto.OfficeTaskFilterDTO
	if err := c.Bind(&filterDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	tasks, err := ctrl.service.List(c.Request().Context(), filterDTO)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, tasks, "Задачи получены", http.StatusOK)
}

func (ctrl *OfficeTaskController) GetByID(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	task, err := ctrl.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, task, "Задача получена", http.StatusOK)
}

func (ctrl *OfficeTaskController) Create(c echo.Context) error {
	var createDTO dto.CreateOfficeTaskDTO
	if err := c.Bind(&createDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&createDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	task, err := ctrl.service.Create(c.Request().Context(), createDTO, mutationContext(c))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, task, "Задача создана", http.StatusCreated)
}

func (ctrl *OfficeTaskController) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var updateDTO dto.UpdateOfficeTaskDTO
	if err := c.Bind(&updateDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&updateDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	task, err := ctrl.service.Update(c.Request().Context(), id, updateDTO, mutationContext(c))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, task, "Задача обновлена", http.StatusOK)
}

func (ctrl *OfficeTaskController) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.service.Delete(c.Request().Context(), id, mutationContext(c)); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.NoContent(http.StatusNoContent)
}
