// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"

	"birthday_tracker/internal/domain/birthday"

	"gopkg.in/telebot.v3"
)

// postedButtonUnique identifies the inline "mark posted" button callbacks.
const postedButtonUnique = "posted"

// TelebotAdapter mirrors reminders into the admin's Telegram chat.
type TelebotAdapter struct {
	bot         *telebot.Bot
	adminChatID int64
}

func NewTelebotAdapter(b *telebot.Bot, adminChatID int64) *TelebotAdapter {
	return &TelebotAdapter{bot: b, adminChatID: adminChatID}
}

// Mirror sends text to the admin chat with one "mark posted" button per due record.
func (tba *TelebotAdapter) Mirror(ctx context.Context, text string, due []birthday.Record) error {
	options := &telebot.SendOptions{}
	if markup := postedButtons(due); markup != nil {
		options.ReplyMarkup = markup
	}

	recipient := &telebot.User{ID: tba.adminChatID}
	if _, err := tba.bot.Send(recipient, text, options); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

func postedButtons(due []birthday.Record) *telebot.ReplyMarkup {
	if len(due) == 0 {
		return nil
	}
	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(due))
	for _, r := range due {
		btn := markup.Data(fmt.Sprintf("✅ %s posted", r.Name), postedButtonUnique, r.ID)
		rows = append(rows, markup.Row(btn))
	}
	markup.Inline(rows...)
	return markup
}
