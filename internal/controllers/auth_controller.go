package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/services"
	"github.com/AntonZhikin/OfficeDepartment/pkg/utils"
)

type AuthController struct {
	service services.AuthServiceInterface
	logger  *zap.Logger
}

func NewAuthController(service services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{service: service, logger: logger}
}

func (ctrl *AuthController) Register(c echo.Context) error {
	var registerDTO dto.RegisterDTO
	if err := c.Bind(&registerDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&registerDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	user, err := ctrl.service.Register(c.Request().Context(), registerDTO, mutationContext(c))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, user, "Пользователь зарегистрирован", http.StatusCreated)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var loginDTO dto.LoginDTO
	if err := c.Bind(&loginDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&loginDTO); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	response, err := ctrl.service.Login(c.Request().Context(), loginDTO)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, response, "Вход выполнен", http.StatusOK)
}
