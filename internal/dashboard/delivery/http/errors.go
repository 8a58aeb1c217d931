package http

import (
	"errors"
	"net/http"

	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// errorStatus maps a service error onto an HTTP status code.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrDataUnavailable), errors.Is(err, entity.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, entity.ErrMalformedArticle):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, log *logger.Logger, msg string, err error) error {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.ErrorContext(c.Request().Context(), msg, logger.ErrorField(err), logger.StringField("path", c.Path()))
		return c.JSON(status, echo.Map{"error": msg})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
