package notify

import (
	"context"
	"testing"

	"github.com/example/sakura/internal/study"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

var kenji = study.DueCount{UserID: "u1", Username: "kenji", Name: "Kenji", Due: 3}

func TestMessage(t *testing.T) {
	assert.Contains(t, Message(kenji), "Kenji, you have 3 reviews waiting")
	assert.Contains(t, Message(study.DueCount{Username: "yuki", Due: 1}), "yuki, you have 1 review waiting")
}

func TestLogNotifier(t *testing.T) {
	logger, hook := test.NewNullLogger()
	n := NewLog(logrus.NewEntry(logger))

	require.NoError(t, n.SendReminder(context.Background(), kenji))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, 3, entry.Data["due"])
	assert.Equal(t, "notify", entry.Data["component"])
}

func TestTelegramNotifier(t *testing.T) {
	logger, _ := test.NewNullLogger()
	api := &fakeSender{}
	n := newTelegram(api, -100, logrus.NewEntry(logger))

	require.NoError(t, n.SendReminder(context.Background(), kenji))
	require.Len(t, api.sent, 1)
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(-100), msg.ChatID)
	assert.Equal(t, Message(kenji), msg.Text)

	api.err = errors.New("chat not found")
	assert.Error(t, n.SendReminder(context.Background(), kenji))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.SendReminder(ctx, kenji), context.Canceled)
}

func TestMulti(t *testing.T) {
	logger, hook := test.NewNullLogger()
	broken := newTelegram(&fakeSender{err: errors.New("down")}, 1, logrus.NewEntry(logger))
	m := Multi{broken, NewLog(logrus.NewEntry(logger))}

	err := m.SendReminder(context.Background(), kenji)
	assert.Error(t, err)
	// The log notifier still ran after the failure.
	assert.Equal(t, "Reviews are waiting", hook.LastEntry().Message)
}
