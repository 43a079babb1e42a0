package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"birthday_tracker/internal/domain/birthday"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Validation errors for record input
var ErrNameRequired = fmt.Errorf("name is required")
var ErrInvalidBirthday = fmt.Errorf("birthday must be a date in YYYY-MM-DD form")

// CreateInput carries the caller-supplied fields of a new record.
type CreateInput struct {
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
	Birthday string `json:"birthday"`
}

// BirthdayService handles record CRUD. Every mutation reads the whole collection,
// changes it in memory and writes it back; concurrent writers overwrite each other.
type BirthdayService struct {
	repo   birthday.Repository
	logger *logrus.Entry
	now    func() time.Time
	newID  func() (string, error)
}

func NewBirthdayService(repo birthday.Repository, logger *logrus.Entry) *BirthdayService {
	return &BirthdayService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  newTimeOrderedID,
	}
}

// newTimeOrderedID returns a UUIDv7, which embeds the creation time.
func newTimeOrderedID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *BirthdayService) List(ctx context.Context) ([]birthday.Record, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list birthdays: %w", err)
	}
	return records, nil
}

// Create validates the input, then appends a new unposted record.
func (s *BirthdayService) Create(ctx context.Context, in CreateInput) (*birthday.Record, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if _, err := birthday.ParseAnnualDate(in.Birthday); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBirthday, err)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate record id: %w", err)
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load birthdays: %w", err)
	}

	record := birthday.Record{
		ID:        id,
		Name:      name,
		Gender:    strings.TrimSpace(in.Gender),
		Contact:   strings.TrimSpace(in.Contact),
		Email:     strings.TrimSpace(in.Email),
		Birthday:  strings.TrimSpace(in.Birthday),
		Posted:    false,
		CreatedAt: s.now().UTC(),
	}
	records = append(records, record)

	if err := s.repo.ReplaceAll(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save birthdays: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"record_id": record.ID, "name": record.Name}).Info("Birthday record created")
	return &record, nil
}

// ToggleAcknowledged flips the posted flag of one record. Unknown ids return
// birthday.ErrRecordNotFound without writing anything.
func (s *BirthdayService) ToggleAcknowledged(ctx context.Context, id string) (*birthday.Record, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load birthdays: %w", err)
	}

	idx := birthday.FindIndex(records, id)
	if idx == -1 {
		return nil, birthday.ErrRecordNotFound
	}
	records[idx].Posted = !records[idx].Posted

	if err := s.repo.ReplaceAll(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save birthdays: %w", err)
	}

	updated := records[idx]
	s.logger.WithFields(logrus.Fields{"record_id": id, "posted": updated.Posted}).Info("Birthday posted flag toggled")
	return &updated, nil
}

// Delete removes the record with the given id. An unknown id is not an error;
// the collection is written back unchanged.
func (s *BirthdayService) Delete(ctx context.Context, id string) error {
	records, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load birthdays: %w", err)
	}

	kept := make([]birthday.Record, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}

	if err := s.repo.ReplaceAll(ctx, kept); err != nil {
		return fmt.Errorf("failed to save birthdays: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"record_id": id, "removed": len(records) - len(kept)}).Info("Birthday delete processed")
	return nil
}

// Upcoming lists records occurring within withinDays of reference.
func (s *BirthdayService) Upcoming(ctx context.Context, reference time.Time, withinDays int) ([]birthday.Due, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list birthdays: %w", err)
	}
	return birthday.Upcoming(records, reference, withinDays), nil
}
