package study

import (
	"fmt"
	"testing"
	"time"

	"github.com/example/sakura/internal/progression"
	"github.com/example/sakura/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveResultSignedOut(t *testing.T) {
	h := newHarness(t)
	h.SaveResult(models.TestResult{Score: 5, Total: 10, Type: models.ExamMock, Level: models.LevelN5})
	assert.Equal(t, 0, h.backend.Len())
	assert.Empty(t, h.GetHistory())
}

func TestSaveResult(t *testing.T) {
	h := newHarness(t)
	me := h.signIn(t, "kenji")

	h.SaveResult(models.TestResult{Score: 7, Total: 10, Type: models.ExamMock, Level: models.LevelN5, UserID: "someone-else"})
	p := h.current(t)
	assert.Equal(t, 70, p.XP)
	assert.False(t, p.HasBadge(progression.BadgeFlawless))

	history := h.GetHistory()
	require.Len(t, history, 1)
	assert.Equal(t, me.ID, history[0].UserID)
	assert.NotEmpty(t, history[0].ID)
	assert.Equal(t, day1.UnixMilli(), history[0].Date)
}

func TestSaveResultFlawless(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "kenji")
	events := h.listen()

	h.SaveResult(models.TestResult{Score: 10, Total: 10, Type: models.ExamMini, Level: models.LevelN5})
	p := h.current(t)
	assert.True(t, p.HasBadge(progression.BadgeFlawless))
	assert.Equal(t, 100+progression.FlawlessXP, p.XP)
	assert.Equal(t, []string{progression.BadgeFlawless}, events.badges)

	// The badge is only awarded once.
	h.SaveResult(models.TestResult{Score: 10, Total: 10, Type: models.ExamMini, Level: models.LevelN5})
	assert.Equal(t, 200+progression.FlawlessXP, h.current(t).XP)
	assert.Len(t, events.badges, 1)

	// An empty exam is not a perfect score.
	h.Update(models.UserUpdate{Badges: []string{}})
	h.SaveResult(models.TestResult{Score: 0, Total: 0, Type: models.ExamMini, Level: models.LevelN5})
	assert.False(t, h.current(t).HasBadge(progression.BadgeFlawless))
}

func TestSaveResultPromotes(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "kenji")
	h.Update(models.UserUpdate{XP: models.Ptr(950)})

	h.SaveResult(models.TestResult{Score: 5, Total: 10, Type: models.ExamMock, Level: models.LevelN5})
	p := h.current(t)
	assert.Equal(t, 1000, p.XP)
	assert.Equal(t, models.LevelN4, p.Level)
	assert.True(t, p.HasBadge(progression.MasteryBadgeID(models.LevelN5)))
}

func TestSaveResultRunsStreakCheck(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "kenji")
	h.clock.Advance(24 * time.Hour)

	h.SaveResult(models.TestResult{Score: 1, Total: 10, Type: models.ExamMock, Level: models.LevelN5})
	assert.Equal(t, 2, h.current(t).Streak)
}

func TestHistoryIsPerUserInOrder(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "kenji")
	for _, score := range []int{3, 6, 9} {
		h.SaveResult(models.TestResult{ID: fmt.Sprintf("k%d", score), Score: score, Total: 10, Type: models.ExamMock, Level: models.LevelN5})
	}
	h.Logout()

	h.signIn(t, "yuki")
	h.SaveResult(models.TestResult{Score: 1, Total: 10, Type: models.ExamMini, Level: models.LevelN5})
	assert.Len(t, h.GetHistory(), 1)
	h.Logout()

	_, err := h.Login("kenji", "secret")
	require.NoError(t, err)
	h.Wait()

	var ids []string
	for _, r := range h.GetHistory() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"k3", "k6", "k9"}, ids)
}

func TestGetExamQuestions(t *testing.T) {
	h := newHarness(t)

	questions := h.GetExamQuestions(models.LevelN4, 10)
	require.Len(t, questions, 10)
	for _, q := range questions {
		assert.Less(t, q.CorrectIndex, len(q.Options))
		assert.Len(t, q.Options, 4)
	}

	assert.Empty(t, h.GetExamQuestions(models.Level("N9"), 10))
}
