package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"birthday_tracker/internal/app"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// Services bundles the application services the HTTP API exposes.
type Services struct {
	Birthdays *app.BirthdayService
	Settings  *app.SettingsService
	Reminders *app.ReminderService
}

type Server struct {
	echo     *echo.Echo
	svc      Services
	logger   *logrus.Entry
	location *time.Location
	now      func() time.Time
}

func NewServer(svc Services, location *time.Location, logger *logrus.Entry) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		svc:      svc,
		logger:   logger,
		location: location,
		now:      time.Now,
	}

	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			}).Debug("Request handled")
			return nil
		},
	}))
	e.Use(corsHeaders)

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/healthz", s.health)

	s.echo.GET("/api/birthdays", s.listBirthdays)
	s.echo.POST("/api/birthdays", s.createBirthday)
	s.echo.PATCH("/api/birthdays", s.updateBirthday)
	s.echo.DELETE("/api/birthdays", s.deleteBirthday)
	s.echo.PATCH("/api/birthdays/:id", s.updateBirthday)
	s.echo.DELETE("/api/birthdays/:id", s.deleteBirthday)
	s.echo.GET("/api/birthdays/upcoming", s.upcomingBirthdays)

	s.echo.GET("/api/settings", s.getSettings)
	s.echo.POST("/api/settings", s.setSettings)

	s.echo.POST("/api/send-reminder", s.sendReminder)
}

// ServeHTTP lets the server be mounted or exercised with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start blocks serving on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.WithField("addr", addr).Info("HTTP server listening")
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// corsHeaders sets permissive cross-origin headers on every response and
// answers any OPTIONS request with an empty 200.
func corsHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
