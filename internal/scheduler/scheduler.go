package scheduler

import (
	"context"
	"time"

	"github.com/example/sakura/internal/config"
	"github.com/example/sakura/internal/study"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// Notifier sends a reminder for one account
type Notifier interface {
	SendReminder(ctx context.Context, due study.DueCount) error
}

// DueSource reports the accounts with reviews waiting
type DueSource interface {
	DueSummary() []study.DueCount
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    DueSource
	notifier  Notifier
	startHour int
	endHour   int
	now       func() time.Time
	logger    *logrus.Entry
	ctx       context.Context
	cancel    context.CancelFunc
}

// New creates a new scheduler instance. Hours outside 0-23 fall back to the defaults.
func New(source DueSource, notifier Notifier, startHour, endHour int, logger *logrus.Entry) *Scheduler {
	if startHour < 0 || startHour > 23 {
		startHour = config.DefaultNotificationStartHour
	}
	if endHour < 0 || endHour > 23 {
		endHour = config.DefaultNotificationEndHour
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		source:    source,
		notifier:  notifier,
		startHour: startHour,
		endHour:   endHour,
		now:       time.Now,
		logger:    logger.WithField("component", "scheduler"),
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	// Hourly check for accounts that need a reminder
	if _, err := s.scheduler.Every(1).Hour().Do(func() { s.RunOnce(s.ctx) }); err != nil {
		return err
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	s.logger.WithFields(logrus.Fields{"start_hour": s.startHour, "end_hour": s.endHour}).Info("Reminder scheduler started")
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.scheduler.Stop()
}

// InWindow reports whether reminders may be sent at hour.
func (s *Scheduler) InWindow(hour int) bool {
	return hour >= s.startHour && hour <= s.endHour
}

// RunOnce sends one reminder per account with due reviews if the current
// hour is inside the notification window. It returns the number sent.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	currentHour := s.now().Hour()
	if !s.InWindow(currentHour) {
		s.logger.WithFields(logrus.Fields{
			"hour":       currentHour,
			"start_hour": s.startHour,
			"end_hour":   s.endHour,
		}).Debug("Current hour is outside notification hours, skipping reminders")
		return 0
	}

	sent := 0
	for _, due := range s.source.DueSummary() {
		if ctx.Err() != nil {
			break
		}
		if err := s.notifier.SendReminder(ctx, due); err != nil {
			s.logger.WithError(err).WithField("user_id", due.UserID).Error("Error sending reminder")
			continue
		}
		sent++
	}
	return sent
}
