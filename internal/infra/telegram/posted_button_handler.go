// internal/infra/telegram/posted_button_handler.go
package telegram

import (
	"context"
	"errors"
	"fmt"

	"birthday_tracker/internal/domain/birthday"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// PostedToggler flips a record's posted flag.
type PostedToggler interface {
	ToggleAcknowledged(ctx context.Context, id string) (*birthday.Record, error)
}

// RegisterPostedButtonHandler handles the inline buttons attached to mirrored reminders.
func RegisterPostedButtonHandler(ctx context.Context, b *telebot.Bot, toggler PostedToggler, adminTelegramID int64, baseLogger *logrus.Entry) {
	b.Handle(&telebot.Btn{Unique: postedButtonUnique}, func(c telebot.Context) error {
		recordID := c.Data()
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "posted_button",
			"sender_id": c.Sender().ID,
			"record_id": recordID,
		})

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized callback")
			return c.Respond(&telebot.CallbackResponse{Text: "Not allowed."})
		}
		if recordID == "" {
			c.Bot().OnError(fmt.Errorf("empty record id in posted callback"), c)
			return c.Respond(&telebot.CallbackResponse{Text: "Invalid button."})
		}

		record, err := toggler.ToggleAcknowledged(ctx, recordID)
		if err != nil {
			if errors.Is(err, birthday.ErrRecordNotFound) {
				handlerLogger.Warn("Record no longer exists")
				return c.Respond(&telebot.CallbackResponse{Text: "That record no longer exists."})
			}
			handlerLogger.WithError(err).Error("Failed to toggle posted flag")
			return c.Respond(&telebot.CallbackResponse{Text: "Something went wrong."})
		}

		handlerLogger.WithField("posted", record.Posted).Info("Posted flag toggled from chat")
		return c.Respond(&telebot.CallbackResponse{Text: postedStatusText(record)})
	})
}

func postedStatusText(r *birthday.Record) string {
	if r.Posted {
		return fmt.Sprintf("%s marked as posted.", r.Name)
	}
	return fmt.Sprintf("%s marked as not posted.", r.Name)
}
