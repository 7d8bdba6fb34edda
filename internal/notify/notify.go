// Package notify delivers due-review reminders.
package notify

import (
	"context"
	"fmt"

	"github.com/example/sakura/internal/study"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Notifier delivers one reminder
type Notifier interface {
	SendReminder(ctx context.Context, due study.DueCount) error
}

// Log writes reminders to the log
type Log struct {
	logger *logrus.Entry
}

// NewLog creates a notifier that only logs.
func NewLog(logger *logrus.Entry) *Log {
	return &Log{logger: logger.WithField("component", "notify")}
}

// SendReminder logs one reminder.
func (l *Log) SendReminder(_ context.Context, due study.DueCount) error {
	l.logger.WithFields(logrus.Fields{
		"user_id":  due.UserID,
		"username": due.Username,
		"due":      due.Due,
	}).Info("Reviews are waiting")
	return nil
}

// Multi sends every reminder through each notifier in turn. All notifiers are
// tried; the first error is returned.
type Multi []Notifier

// SendReminder fans the reminder out.
func (m Multi) SendReminder(ctx context.Context, due study.DueCount) error {
	var first error
	for _, n := range m {
		if err := n.SendReminder(ctx, due); err != nil && first == nil {
			first = errors.Wrapf(err, "remind %s", due.Username)
		}
	}
	return first
}

// Message renders the reminder text.
func Message(due study.DueCount) string {
	noun := "reviews"
	if due.Due == 1 {
		noun = "review"
	}
	name := due.Name
	if name == "" {
		name = due.Username
	}
	return fmt.Sprintf("%s, you have %d %s waiting! Open Sakura Sensei to keep your streak going. 🌸", name, due.Due, noun)
}
