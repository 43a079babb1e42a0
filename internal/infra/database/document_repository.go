package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"birthday_tracker/internal/domain/birthday"
	"birthday_tracker/internal/domain/document"
)

// BirthdayRepository implements birthday.Repository over any document.Store.
type BirthdayRepository struct {
	store document.Store
}

func NewBirthdayRepository(store document.Store) *BirthdayRepository {
	return &BirthdayRepository{store: store}
}

func (r *BirthdayRepository) List(ctx context.Context) ([]birthday.Record, error) {
	body, err := r.store.Get(ctx, document.KeyBirthdays)
	if err != nil {
		return nil, err
	}
	records := make([]birthday.Record, 0)
	// Anything other than a JSON list is treated as an empty collection.
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '[' {
		return records, nil
	}
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("error decoding birthdays document: %w", err)
	}
	return records, nil
}

func (r *BirthdayRepository) ReplaceAll(ctx context.Context, records []birthday.Record) error {
	if records == nil {
		records = make([]birthday.Record, 0)
	}
	body, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("error encoding birthdays document: %w", err)
	}
	return r.store.Set(ctx, document.KeyBirthdays, body)
}

// SettingsRepository implements birthday.SettingsRepository over any document.Store.
type SettingsRepository struct {
	store document.Store
}

func NewSettingsRepository(store document.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

func (r *SettingsRepository) Get(ctx context.Context) (birthday.Settings, bool, error) {
	body, err := r.store.Get(ctx, document.KeySettings)
	if err != nil {
		return birthday.Settings{}, false, err
	}
	if len(body) == 0 || string(body) == "null" {
		return birthday.DefaultSettings(), false, nil
	}
	settings := birthday.DefaultSettings()
	if err := json.Unmarshal(body, &settings); err != nil {
		return birthday.Settings{}, false, fmt.Errorf("error decoding settings document: %w", err)
	}
	return settings, true, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings birthday.Settings) error {
	body, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error encoding settings document: %w", err)
	}
	return r.store.Set(ctx, document.KeySettings, body)
}
