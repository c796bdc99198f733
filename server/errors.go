package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octabyte/saveat-admin/apiclient"
	"github.com/octabyte/saveat-admin/enums"
	"github.com/octabyte/saveat-admin/utils/logger"
)

// handleError maps handler errors onto responses. A rejected session sends the operator to
// sign-in; backend failures keep their status and message for the screen to show.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		apiErr     *apiclient.APIError
		httpErr    *echo.HTTPError
		invalid    validator.ValidationErrors
		transport  *url.Error
		respondErr error
	)

	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		respondErr = c.Redirect(http.StatusSeeOther, s.nav.Take(enums.RouteSignIn))
	case errors.As(err, &apiErr):
		respondErr = c.JSON(apiErr.Status, message{Message: apiErr.Message})
	case errors.As(err, &invalid):
		respondErr = c.JSON(http.StatusBadRequest, message{Message: describe(invalid)})
	case errors.As(err, &httpErr):
		respondErr = c.JSON(httpErr.Code, message{Message: fmt.Sprint(httpErr.Message)})
	case errors.As(err, &transport):
		respondErr = c.JSON(http.StatusBadGateway, message{Message: "No se pudo contactar al servidor"})
	case errors.Is(err, apiclient.ErrMalformedAuthResponse):
		logger.LogError("unexpected authentication response", zap.Error(err))
		respondErr = c.JSON(http.StatusBadGateway, message{Message: "Respuesta inesperada del servidor"})
	default:
		logger.LogError("unhandled error", zap.Error(err))
		respondErr = c.JSON(http.StatusInternalServerError, message{Message: http.StatusText(http.StatusInternalServerError)})
	}

	if respondErr != nil {
		logger.LogError("failed to write error response", zap.Error(respondErr))
	}
}

func describe(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Solicitud inválida"
	}
	first := errs[0]
	return fmt.Sprintf("El campo %s no es válido (%s)", first.Field(), first.Tag())
}
