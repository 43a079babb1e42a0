package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"birthday_tracker/internal/app" // For DispatchMode and Report

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const runTimeout = 5 * time.Minute

// Dispatcher runs one reminder pass.
type Dispatcher interface {
	Dispatch(ctx context.Context, reference time.Time, mode app.DispatchMode) (app.Report, error)
}

type ReminderScheduler struct {
	cronEngine *cron.Cron
	dispatcher Dispatcher
	logger     *logrus.Entry
	cronSpec   string // e.g., "0 7 * * *" (07:00 daily)
	location   *time.Location
	now        func() time.Time
	startRun   sync.WaitGroup // the run-on-start pass, which cron does not track
}

func NewReminderScheduler(
	dispatcher Dispatcher,
	logger *logrus.Entry,
	cronSpec string,
	location *time.Location,
) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine: cron.New(cron.WithLocation(location)),
		dispatcher: dispatcher,
		logger:     logger,
		cronSpec:   cronSpec,
		location:   location,
		now:        time.Now,
	}
}

// Start registers the daily job and starts the cron engine. With runOnStart the
// job also runs once in the background right away.
func (s *ReminderScheduler) Start(runOnStart bool) error {
	s.logger.Info("Starting reminder scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily birthday reminder.")
		_, _ = s.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("could not add reminder cron job: %w", err)
	}

	s.cronEngine.Start()
	s.logger.WithFields(logrus.Fields{"spec": s.cronSpec, "location": s.location.String()}).Info("Reminder scheduler started.")

	if runOnStart {
		s.startRun.Add(1)
		go func() {
			defer s.startRun.Done()
			_, _ = s.RunOnce(context.Background())
		}()
	}
	return nil
}

// RunOnce performs one scheduled dispatch and returns its status line, which is
// meant for operational logs, along with the dispatch error.
func (s *ReminderScheduler) RunOnce(parent context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(parent, runTimeout)
	defer cancel()

	report, err := s.dispatcher.Dispatch(ctx, s.now().In(s.location), app.ModeScheduled)
	status := statusLine(report, err)
	switch {
	case errors.Is(err, app.ErrAdminAddressMissing):
		s.logger.Warn(status)
	case err != nil:
		s.logger.WithError(err).Error(status)
	default:
		s.logger.WithFields(logrus.Fields{
			"notifications": report.Notifications,
			"records":       report.Records,
		}).Info(status)
	}
	return status, err
}

func statusLine(report app.Report, err error) string {
	switch {
	case errors.Is(err, app.ErrAdminAddressMissing):
		return "No admin email set"
	case err != nil:
		return "Reminder run failed: " + err.Error()
	case report.Notifications == 0:
		return "No reminders needed today"
	default:
		return fmt.Sprintf("Sent reminders for %d birthday(s)", report.Records)
	}
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Stops new runs, waits for a running job.
	<-ctx.Done()
	s.startRun.Wait()
	s.logger.Info("Reminder scheduler gracefully stopped.")
}
