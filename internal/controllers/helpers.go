package controllers

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/AntonZhikin/OfficeDepartment/internal/services"
	apperrors "github.com/AntonZhikin/OfficeDepartment/pkg/errors"
	"github.com/AntonZhikin/OfficeDepartment/pkg/utils"
)

// mutationContext собирает из запроса, кто и откуда выполняет мутацию.
func mutationContext(c echo.Context) services.MutationContext {
	ip := c.RealIP()
	return services.MutationContext{
		ActorID: utils.UserIDFromContext(c.Request().Context()),
		IP:      &ip,
	}
}

func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError("неверный формат идентификатора")
	}
	return id, nil
}
