package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/services"
	apperrors "github.com/AntonZhikin/OfficeDepartment/pkg/errors"
	"github.com/AntonZhikin/OfficeDepartment/pkg/utils"
)

type AuditLogController struct {
	service services.AuditLogServiceInterface
	logger  *zap.Logger
}

func NewAuditLogController(service services.AuditLogServiceInterface, logger *zap.Logger) *AuditLogController {
	return &AuditLogController{service: service, logger: logger}
}

func (ctrl *AuditLogController) List(c echo.Context) error {
	var filterDTO dto.AuditLogFilterDTO
	if err := c.Bind(&filterDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	logs, err := ctrl.service.List(c.Request().Context(), filterDTO)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, logs, "Журнал аудита получен", http.StatusOK)
}

func (ctrl *AuditLogController) GetByID(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	log, err := ctrl.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, log, "Запись аудита получена", http.StatusOK)
}

// Export отдаёт журнал аудита одним XLSX-файлом.
func (ctrl *AuditLogController) Export(c echo.Context) error {
	file, err := ctrl.service.ExportXLSX(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	filename := fmt.Sprintf("audit_logs_%s.xlsx", time.Now().Format("2006-01-02"))

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)

	if err := file.Write(c.Response().Writer); err != nil {
		ctrl.logger.Error("Ошибка при записи XLSX в ответ", zap.Error(err))
		return apperrors.NewInternalError("не удалось сформировать отчёт", err)
	}
	return nil
}
