package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/services"
	"github.com/AntonZhikin/OfficeDepartment/pkg/utils"
)

type HeadOfficeController struct {
	service services.HeadOfficeServiceInterface
	logger  *zap.Logger
}

func NewHeadOfficeController(service services.HeadOfficeServiceInterface, logger *zap.Logger) *HeadOfficeController {
	return &HeadOfficeController{service: service, logger: logger}
}

func (ctrl *HeadOfficeController) List(c echo.Context) error {
	var filterDTO dto.HeadOfficeFilterDTO
	if err := c.Bind(&filterDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	offices, err := ctrl.service.List(c.Request().Context(), filterDTO)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, offices, "Головные офисы получены", http.StatusOK)
}

func (ctrl *HeadOfficeController) GetByID(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	office, err := ctrl.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, office, "Головной офис получен", http.StatusOK)
}

func (ctrl *HeadOfficeController) Create(c echo.Context) error {
	var createDTO dto.CreateHeadOfficeDTO
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
	return utils.SuccessResponse(c, office, "Головной офис создан", http.StatusCreated)
}

func (ctrl *HeadOfficeController) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var updateDTO dto.UpdateHeadOfficeDTO
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
	return utils.SuccessResponse(c, office, "Головной офис обновлён", http.StatusOK)
}

func (ctrl *HeadOfficeController) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.service.Delete(c.Request().Context(), id, mutationContext(c)); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return c.NoContent(http.StatusNoContent)
}
