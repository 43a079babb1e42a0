package mailer

import (
	"context"
	"errors"
	"testing"

	"birthday_tracker/internal/infra/config"
)

func TestSendWithoutCredentials(t *testing.T) {
	n := NewSMTPNotifier(&config.AppConfig{SMTPHost: "smtp.example.org", SMTPPort: 587})

	err := n.Send(context.Background(), "admin@example.org", "subject", "<p>hi</p>")
	if !errors.Is(err, config.ErrMissing) {
		t.Fatalf("Send() error = %v, want config.ErrMissing", err)
	}
}

func TestBuildMessage(t *testing.T) {
	msg, err := buildMessage("tracker@example.org", "admin@example.org", "🎂 Reminder", "<p>hi</p>")
	if err != nil {
		t.Fatalf("buildMessage() failed: %v", err)
	}
	rcpts, err := msg.GetRecipients()
	if err != nil {
		t.Fatalf("GetRecipients() failed: %v", err)
	}
	if len(rcpts) != 1 || rcpts[0] != "admin@example.org" {
		t.Errorf("recipients = %v", rcpts)
	}

	tests := []struct {
		name     string
		from, to string
	}{
		{"Bad sender", "not an address", "admin@example.org"},
		{"Bad recipient", "tracker@example.org", "admin at example"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildMessage(tt.from, tt.to, "s", "b"); err == nil {
				t.Error("buildMessage() expected error")
			}
		})
	}
}
