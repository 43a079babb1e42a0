package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"birthday_tracker/internal/app"
	"birthday_tracker/internal/domain/birthday"
	"birthday_tracker/internal/infra/config"

	"github.com/labstack/echo/v4"
)

const (
	msgInternal       = "Internal error"
	msgNotFound       = "Not found"
	msgSendFailed     = "Failed to send reminder"
	msgAdminNotConfig = "Admin email not configured. Please save your email in Settings first."
)

// httpError maps service errors onto status codes. Storage failures collapse to
// a generic 500 so backend details are not leaked.
func (s *Server) httpError(err error) *echo.HTTPError {
	var missing *config.MissingError
	switch {
	case errors.As(err, &missing):
		return echo.NewHTTPError(http.StatusInternalServerError, missing.Error())
	case errors.Is(err, config.ErrMissing):
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	case errors.Is(err, birthday.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, msgNotFound)
	case errors.Is(err, app.ErrNameRequired),
		errors.Is(err, app.ErrInvalidBirthday),
		errors.Is(err, app.ErrAdminAddressRequired),
		errors.Is(err, app.ErrInvalidLeadDays):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrAdminAddressMissing):
		return echo.NewHTTPError(http.StatusBadRequest, msgAdminNotConfig)
	case errors.Is(err, app.ErrNotificationFailed):
		s.logger.WithError(err).Error("Reminder notification failed")
		return echo.NewHTTPError(http.StatusInternalServerError, msgSendFailed)
	default:
		s.logger.WithError(err).Error("Request failed")
		return echo.NewHTTPError(http.StatusInternalServerError, msgInternal)
	}
}

// handleError renders every error as {"error": "..."}.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he := &echo.HTTPError{}
	if !errors.As(err, &he) {
		he = s.httpError(err)
	}

	msg := fmt.Sprint(he.Message)
	if he.Code >= http.StatusInternalServerError && he.Internal != nil {
		s.logger.WithError(he.Internal).Error("Internal error")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, map[string]string{"error": msg})
	}
	if err != nil {
		s.logger.WithError(err).Warn("Failed to write error response")
	}
}
