// internal/app/reminder_service.go
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"birthday_tracker/internal/domain/birthday"
	"birthday_tracker/internal/domain/notify"

	"github.com/sirupsen/logrus"
)

// ErrAdminAddressMissing means neither the settings nor ADMIN_EMAIL name a recipient.
var ErrAdminAddressMissing = fmt.Errorf("admin email not configured")

// ErrNotificationFailed wraps every failed send.
var ErrNotificationFailed = fmt.Errorf("failed to send reminder")

// FinalReminderDays is the extra bucket a scheduled run always checks.
const FinalReminderDays = 1

// DispatchMode selects which lead-time buckets a run checks.
type DispatchMode string

const (
	// ModeOnDemand checks only the configured reminder days.
	ModeOnDemand DispatchMode = "on-demand"
	// ModeScheduled checks the configured reminder days and the day before.
	ModeScheduled DispatchMode = "scheduled"
)

// Report summarizes one dispatch run.
type Report struct {
	Notifications int `json:"notifications"` // messages sent, one per non-empty bucket
	Records       int `json:"sent"`          // records covered by those messages
}

// ReminderService finds due birthdays and emails the admin about them.
// It never marks records as posted; that stays a manual admin action.
type ReminderService struct {
	birthdays       birthday.Repository
	settings        birthday.SettingsRepository
	mailer          notify.Notifier
	mirror          notify.ChatMirror // optional
	fallbackAddress string
	organization    string
	logger          *logrus.Entry
}

func NewReminderService(
	br birthday.Repository,
	sr birthday.SettingsRepository,
	mailer notify.Notifier,
	mirror notify.ChatMirror, // may be nil
	fallbackAddress string, // ADMIN_EMAIL, used when settings have no address
	organization string,
	logger *logrus.Entry,
) *ReminderService {
	return &ReminderService{
		birthdays:       br,
		settings:        sr,
		mailer:          mailer,
		mirror:          mirror,
		fallbackAddress: fallbackAddress,
		organization:    organization,
		logger:          logger,
	}
}

// Dispatch runs one reminder pass at reference. Sends are sequential; the first
// failed send ends the run and is returned together with what was sent so far.
func (s *ReminderService) Dispatch(ctx context.Context, reference time.Time, mode DispatchMode) (Report, error) {
	var report Report
	log := s.logger.WithFields(logrus.Fields{"mode": mode, "reference": reference.Format("2006-01-02")})

	records, err := s.birthdays.List(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to load birthdays: %w", err)
	}
	settings, _, err := s.settings.Get(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to load settings: %w", err)
	}

	to := strings.TrimSpace(settings.AdminAddress)
	if to == "" {
		to = s.fallbackAddress
	}
	if to == "" {
		log.Warn("No admin email configured, skipping reminder")
		return report, ErrAdminAddressMissing
	}

	for _, days := range thresholds(int(settings.LeadDays), mode) {
		due := birthday.SelectDue(records, reference, days)
		if len(due) == 0 {
			continue
		}

		label := BucketLabel(days)
		subject, body, err := RenderReminder(s.organization, label, due, reference)
		if err != nil {
			return report, err
		}

		bucketLog := log.WithFields(logrus.Fields{"days": days, "count": len(due)})
		if err := s.mailer.Send(ctx, to, subject, body); err != nil {
			bucketLog.WithError(err).Error("Failed to send reminder email")
			return report, fmt.Errorf("%w (%s): %w", ErrNotificationFailed, label, err)
		}
		report.Notifications++
		report.Records += len(due)
		bucketLog.Info("Reminder email sent")

		if s.mirror != nil {
			if err := s.mirror.Mirror(ctx, RenderReminderText(label, due, reference), due); err != nil {
				bucketLog.WithError(err).Warn("Failed to mirror reminder to chat")
			}
		}
	}

	if report.Notifications == 0 {
		log.Info("No birthdays need reminding today")
	}
	return report, nil
}

// thresholds returns the distinct buckets to check, configured lead time first.
func thresholds(leadDays int, mode DispatchMode) []int {
	if mode != ModeScheduled || leadDays == FinalReminderDays {
		return []int{leadDays}
	}
	return []int{leadDays, FinalReminderDays}
}
