package notify

import (
	"context"

	"github.com/example/sakura/internal/study"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// sender is the part of tgbotapi.BotAPI the notifier uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts reminders to one chat
type Telegram struct {
	api    sender
	chatID int64
	logger *logrus.Entry
}

// NewTelegram connects to the Bot API with token.
func NewTelegram(token string, chatID int64, logger *logrus.Entry) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "connect to telegram")
	}
	logger.WithField("bot", api.Self.UserName).Info("Telegram notifier ready")
	return newTelegram(api, chatID, logger), nil
}

func newTelegram(api sender, chatID int64, logger *logrus.Entry) *Telegram {
	return &Telegram{api: api, chatID: chatID, logger: logger.WithField("component", "telegram")}
}

// SendReminder posts the reminder message to the configured chat.
func (t *Telegram) SendReminder(ctx context.Context, due study.DueCount) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, Message(due))
	if _, err := t.api.Send(msg); err != nil {
		t.logger.WithError(err).WithField("user_id", due.UserID).Error("Error sending reminder")
		return errors.Wrap(err, "send telegram message")
	}

	t.logger.WithFields(logrus.Fields{"user_id": due.UserID, "due": due.Due}).Info("Successfully sent reminder")
	return nil
}
