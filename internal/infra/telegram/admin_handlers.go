package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"birthday_tracker/internal/app"
	"birthday_tracker/internal/domain/birthday"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const defaultUpcomingDays = 30

// AdminServices is what the admin commands need from the application layer.
type AdminServices struct {
	Birthdays interface {
		PostedToggler
		Upcoming(ctx context.Context, reference time.Time, withinDays int) ([]birthday.Due, error)
	}
	Reminders interface {
		Dispatch(ctx context.Context, reference time.Time, mode app.DispatchMode) (app.Report, error)
	}
	Location *time.Location
}

// RegisterAdminHandlers registers handlers for admin commands.
// Only the configured admin Telegram ID may use them.
func RegisterAdminHandlers(ctx context.Context, b *telebot.Bot, svc AdminServices, adminTelegramID int64, baseLogger *logrus.Entry) {
	unauthorized := "Error: you are not allowed to use this command."

	b.Handle("/upcoming", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/upcoming",
			"sender_id": c.Sender().ID,
		})
		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(unauthorized)
		}

		days := defaultUpcomingDays
		if args := c.Args(); len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return c.Send("Usage: /upcoming [days]")
			}
			days = n
		}

		due, err := svc.Birthdays.Upcoming(ctx, time.Now().In(svc.Location), days)
		if err != nil {
			handlerLogger.WithError(err).Error("Failed to list upcoming birthdays")
			return c.Send("Could not load birthdays, please try again later.")
		}
		handlerLogger.WithField("count", len(due)).Info("Upcoming birthdays listed")
		return c.Send(formatUpcoming(due, days))
	})

	b.Handle("/remind", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/remind",
			"sender_id": c.Sender().ID,
		})
		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(unauthorized)
		}

		report, err := svc.Reminders.Dispatch(ctx, time.Now().In(svc.Location), app.ModeOnDemand)
		if err != nil {
			if errors.Is(err, app.ErrAdminAddressMissing) {
				return c.Send("Admin email not configured. Save it in Settings first.")
			}
			handlerLogger.WithError(err).Error("On-demand reminder failed")
			return c.Send(fmt.Sprintf("Reminder failed: %s", err.Error()))
		}
		if report.Notifications == 0 {
			return c.Send("No birthdays need reminding today.")
		}
		return c.Send(fmt.Sprintf("Reminder sent for %d birthday(s).", report.Records))
	})

	b.Handle("/posted", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/posted",
			"sender_id": c.Sender().ID,
		})
		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(unauthorized)
		}

		args := c.Args()
		if len(args) != 1 {
			return c.Send("Usage: /posted <id>")
		}

		record, err := svc.Birthdays.ToggleAcknowledged(ctx, args[0])
		if err != nil {
			if errors.Is(err, birthday.ErrRecordNotFound) {
				return c.Send(fmt.Sprintf("No birthday with id %s.", args[0]))
			}
			handlerLogger.WithError(err).Error("Failed to toggle posted flag")
			return c.Send("Could not update the record, please try again later.")
		}
		return c.Send(postedStatusText(record))
	})
}

func formatUpcoming(due []birthday.Due, days int) string {
	if len(due) == 0 {
		return fmt.Sprintf("No birthdays in the next %d days.", days)
	}
	var response strings.Builder
	response.WriteString(fmt.Sprintf("Birthdays in the next %d days:\n", days))
	for _, d := range due {
		status := ""
		if d.Posted {
			status = " ✅"
		}
		response.WriteString(fmt.Sprintf("• %s, %s (%s)%s\n  id: %s\n", d.Name, app.BucketLabel(d.DaysUntil), d.Birthday, status, d.ID))
	}
	return response.String()
}
