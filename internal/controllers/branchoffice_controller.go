package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/services"
	"github.com/AntonZhikin/OfficeDepartment/pkg/utils"
)

type BranchOfficeController struct {
	service services.BranchOfficeServiceInterface
	logger  *zap.Logger
}

func NewBranchOfficeController(service services.BranchOfficeServiceInterface, logger *zap.Logger) *BranchOfficeController {
	return &BranchOfficeController{service: service, logger: logger}
}

func (ctrl *BranchOfficeController) List(c echo.Context) error {
	var filterDTO dto.BranchOfficeFilterDTO
	if err := c.Bind(&filterDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	offices, err := ctrl.service.List(c.Request().Context(), filterDTO)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, offices, "Филиалы получены", http.StatusOK)
}

func (ctrl *BranchOfficeController) GetByID(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	office, err := ctrl.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, office, "Филиал получен", http.StatusOK)
}

func (ctrl *BranchOfficeController) Create(c echo.Context) error {
	var createDTO dto.CreateBranchOfficeDTO
	if err := c.Bind(&createDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&createDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	office, err := ctrl.service.Create(c.Request().Context(), createDTO, mutationContext(c))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, office, "Филиал создан", http.StatusCreated)
}

func (ctrl *BranchOfficeController) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var updateDTO dto.UpdateBranchOfficeDTO
	if err := c.Bind(&updateDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&updateDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	office, err := ctrl.service.Update(c.Request().Context(), id, updateDTO, mutationContext(c))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, office, "Филиал обновлён", http.StatusOK)
}

func (ctrl *BranchOfficeController) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.service.Delete(c.Request().Context(), id, mutationContext(c)); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.NoContent(http.StatusNoContent)
}
