package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/sakura/internal/study"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource []study.DueCount

func (s staticSource) DueSummary() []study.DueCount { return s }

type recordingNotifier struct {
	sent []string
	fail map[string]bool
}

func (r *recordingNotifier) SendReminder(_ context.Context, due study.DueCount) error {
	if r.fail[due.UserID] {
		return errors.New("unreachable")
	}
	r.sent = append(r.sent, due.UserID)
	return nil
}

func newTestScheduler(t *testing.T, source DueSource, n Notifier, hour int) *Scheduler {
	t.Helper()
	logger, _ := test.NewNullLogger()
	s := New(source, n, 8, 22, logrus.NewEntry(logger))
	s.now = func() time.Time { return time.Date(2026, 3, 14, hour, 30, 0, 0, time.Local) }
	return s
}

func TestRunOnceInsideWindow(t *testing.T) {
	source := staticSource{{UserID: "a", Due: 2}, {UserID: "b", Due: 1}, {UserID: "c", Due: 7}}
	n := &recordingNotifier{fail: map[string]bool{"b": true}}

	s := newTestScheduler(t, source, n, 9)
	assert.Equal(t, 2, s.RunOnce(context.Background()))
	assert.Equal(t, []string{"a", "c"}, n.sent)
}

func TestRunOnceOutsideWindow(t *testing.T) {
	n := &recordingNotifier{}
	for _, hour := range []int{0, 7, 23} {
		s := newTestScheduler(t, staticSource{{UserID: "a", Due: 2}}, n, hour)
		assert.Equal(t, 0, s.RunOnce(context.Background()), "hour %d", hour)
	}
	assert.Empty(t, n.sent)
}

func TestRunOnceStopsWhenCancelled(t *testing.T) {
	n := &recordingNotifier{}
	s := newTestScheduler(t, staticSource{{UserID: "a", Due: 2}}, n, 12)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, 0, s.RunOnce(ctx))
}

func TestWindowBounds(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := New(staticSource{}, &recordingNotifier{}, 30, -4, logrus.NewEntry(logger))
	assert.False(t, s.InWindow(7))
	assert.True(t, s.InWindow(8))
	assert.True(t, s.InWindow(22))
	assert.False(t, s.InWindow(23))
}

func TestStartStop(t *testing.T) {
	n := &recordingNotifier{}
	s := newTestScheduler(t, staticSource{{UserID: "a", Due: 1}}, n, 12)

	require.NoError(t, s.Start(context.Background()))
	s.Stop()
}
