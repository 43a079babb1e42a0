package notify

import (
	"context"

	"birthday_tracker/internal/domain/birthday"
)

// Notifier delivers one formatted message to one address.
// This decouples the reminder logic from the mail library.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ChatMirror receives a plain-text copy of each reminder bucket, together with
// the due records so the chat can offer per-record actions.
type ChatMirror interface {
	Mirror(ctx context.Context, text string, due []birthday.Record) error
}
