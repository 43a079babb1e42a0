package app

import (
	"context"
	"fmt"
	"strings"

	"birthday_tracker/internal/domain/birthday"

	"github.com/sirupsen/logrus"
)

var ErrAdminAddressRequired = fmt.Errorf("admin email is required")
var ErrInvalidLeadDays = birthday.ErrInvalidLeadDays

type SettingsService struct {
	repo   birthday.SettingsRepository
	logger *logrus.Entry
}

func NewSettingsService(repo birthday.SettingsRepository, logger *logrus.Entry) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// Get returns the stored settings, or the defaults when none were saved.
func (s *SettingsService) Get(ctx context.Context) (birthday.Settings, error) {
	settings, _, err := s.repo.Get(ctx)
	if err != nil {
		return birthday.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// Set validates and stores the settings, replacing whatever was there.
func (s *SettingsService) Set(ctx context.Context, settings birthday.Settings) (birthday.Settings, error) {
	settings.AdminAddress = strings.TrimSpace(settings.AdminAddress)
	if settings.AdminAddress == "" {
		return birthday.Settings{}, ErrAdminAddressRequired
	}
	if settings.LeadDays < 0 {
		return birthday.Settings{}, ErrInvalidLeadDays
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return birthday.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"admin_email":   settings.AdminAddress,
		"reminder_days": int(settings.LeadDays),
	}).Info("Settings updated")
	return settings, nil
}
