package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"birthday_tracker/internal/domain/birthday"
	"birthday_tracker/internal/domain/document"
	"birthday_tracker/internal/infra/memstore"
)

func TestBirthdayRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	repo := NewBirthdayRepository(store)

	empty, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() on empty store failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("List() = %v, want empty non-nil slice", empty)
	}

	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	want := []birthday.Record{{ID: "1", Name: "Ada", Birthday: "1990-03-03", CreatedAt: created}}
	if err := repo.ReplaceAll(ctx, want); err != nil {
		t.Fatalf("ReplaceAll() failed: %v", err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ada" || !got[0].CreatedAt.Equal(created) {
		t.Errorf("List() = %+v", got)
	}

	if err := repo.ReplaceAll(ctx, nil); err != nil {
		t.Fatalf("ReplaceAll(nil) failed: %v", err)
	}
	raw, _ := store.Get(ctx, document.KeyBirthdays)
	if string(raw) != `[]` {
		t.Errorf("stored document = %s, want []", raw)
	}
}

func TestBirthdayRepositoryNonListDocument(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	_ = store.Set(ctx, document.KeyBirthdays, []byte(`{"oops":true}`))

	got, err := NewBirthdayRepository(store).List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	repo := NewSettingsRepository(store)

	got, found, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if found || got != birthday.DefaultSettings() {
		t.Errorf("Get() = %+v, %v; want defaults, not found", got, found)
	}

	// Older documents store the days as a string.
	_ = store.Set(ctx, document.KeySettings, []byte(`{"adminEmail":"choir@example.org","reminderDays":"3"}`))
	got, found, err = repo.Get(ctx)
	if err != nil || !found {
		t.Fatalf("Get() = %v, %v", found, err)
	}
	if got.AdminAddress != "choir@example.org" || got.LeadDays != 3 {
		t.Errorf("Get() = %+v", got)
	}

	if err := repo.Save(ctx, birthday.Settings{AdminAddress: "x@y.z", LeadDays: 1}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	raw, _ := store.Get(ctx, document.KeySettings)
	if string(raw) != `{"adminEmail":"x@y.z","reminderDays":"1"}` {
		t.Errorf("stored settings = %s", raw)
	}
}

func TestRepositoriesPropagateStoreErrors(t *testing.T) {
	boom := errors.New("unreachable")
	store := document.Unavailable{Err: boom}

	if _, err := NewBirthdayRepository(store).List(context.Background()); !errors.Is(err, boom) {
		t.Errorf("List() error = %v", err)
	}
	if _, _, err := NewSettingsRepository(store).Get(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Get() error = %v", err)
	}
}
