package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"birthday_tracker/internal/app"
	"birthday_tracker/internal/domain/birthday"

	"github.com/labstack/echo/v4"
)

const (
	defaultUpcomingDays = 30
	actionTogglePosted  = "togglePosted"
)

type successResponse struct {
	Success bool `json:"success"`
}

// recordAction is the PATCH/DELETE body. The id may also come from the path.
type recordAction struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

type reminderResponse struct {
	Success       bool   `json:"success"`
	Sent          int    `json:"sent,omitempty"`
	Notifications int    `json:"notifications,omitempty"`
	Message       string `json:"message,omitempty"`
}

// decodeBody reads a JSON request body. An empty body decodes to the zero value.
// Field validation errors raised while decoding are returned as they are.
func decodeBody(c echo.Context, dst any) error {
	err := json.NewDecoder(c.Request().Body).Decode(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case errors.Is(err, birthday.ErrInvalidLeadDays):
		return err
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
	}
}

func (s *Server) listBirthdays(c echo.Context) error {
	records, err := s.svc.Birthdays.List(c.Request().Context())
	if err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusOK, records)
}

func (s *Server) createBirthday(c echo.Context) error {
	var in app.CreateInput
	if err := decodeBody(c, &in); err != nil {
		return err
	}
	if _, err := s.svc.Birthdays.Create(c.Request().Context(), in); err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (s *Server) updateBirthday(c echo.Context) error {
	req, err := s.recordAction(c)
	if err != nil {
		return err
	}
	if req.Action != "" && req.Action != actionTogglePosted {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown action: "+req.Action)
	}

	if _, err := s.svc.Birthdays.ToggleAcknowledged(c.Request().Context(), req.ID); err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (s *Server) deleteBirthday(c echo.Context) error {
	req, err := s.recordAction(c)
	if err != nil {
		return err
	}
	if err := s.svc.Birthdays.Delete(c.Request().Context(), req.ID); err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (s *Server) recordAction(c echo.Context) (recordAction, error) {
	var req recordAction
	if err := decodeBody(c, &req); err != nil {
		return req, err
	}
	if id := c.Param("id"); id != "" {
		req.ID = id
	}
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" {
		return req, echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	return req, nil
}

func (s *Server) upcomingBirthdays(c echo.Context) error {
	days := defaultUpcomingDays
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be a non-negative integer")
		}
		days = n
	}

	due, err := s.svc.Birthdays.Upcoming(c.Request().Context(), s.now().In(s.location), days)
	if err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusOK, due)
}

func (s *Server) getSettings(c echo.Context) error {
	settings, err := s.svc.Settings.Get(c.Request().Context())
	if err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

func (s *Server) setSettings(c echo.Context) error {
	settings := birthday.DefaultSettings()
	if err := decodeBody(c, &settings); err != nil {
		return err
	}
	saved, err := s.svc.Settings.Set(c.Request().Context(), settings)
	if err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusOK, saved)
}

func (s *Server) sendReminder(c echo.Context) error {
	report, err := s.svc.Reminders.Dispatch(c.Request().Context(), s.now().In(s.location), app.ModeOnDemand)
	if err != nil {
		return s.httpError(err)
	}
	if report.Notifications == 0 {
		return c.JSON(http.StatusOK, reminderResponse{Success: false, Message: "No birthdays need reminding today"})
	}
	return c.JSON(http.StatusOK, reminderResponse{
		Success:       true,
		Sent:          report.Records,
		Notifications: report.Notifications,
	})
}
