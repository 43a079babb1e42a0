package app

import (
	"context"
	"errors"
	"sync"

	"birthday_tracker/internal/domain/birthday"
)

type fakeBirthdayRepo struct {
	records []birthday.Record
	writes  int
	listErr error
	saveErr error
}

func (f *fakeBirthdayRepo) List(ctx context.Context) ([]birthday.Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]birthday.Record(nil), f.records...), nil
}

func (f *fakeBirthdayRepo) ReplaceAll(ctx context.Context, records []birthday.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.writes++
	f.records = append([]birthday.Record(nil), records...)
	return nil
}

type fakeSettingsRepo struct {
	settings *birthday.Settings
	getErr   error
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (birthday.Settings, bool, error) {
	if f.getErr != nil {
		return birthday.Settings{}, false, f.getErr
	}
	if f.settings == nil {
		return birthday.DefaultSettings(), false, nil
	}
	return *f.settings, true, nil
}

func (f *fakeSettingsRepo) Save(ctx context.Context, s birthday.Settings) error {
	f.settings = &s
	return nil
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu     sync.Mutex
	sent   []sentMail
	failOn int // 1-based send number that fails; 0 never fails
}

var errSMTPDown = errors.New("smtp unavailable")

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != 0 && len(f.sent)+1 == f.failOn {
		return errSMTPDown
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeMirror struct {
	texts []string
	due   []int
	err   error
}

func (f *fakeMirror) Mirror(ctx context.Context, text string, due []birthday.Record) error {
	f.texts = append(f.texts, text)
	f.due = append(f.due, len(due))
	return f.err
}
