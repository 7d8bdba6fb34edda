// Package progression turns study events into XP, streaks, badges and level promotions.
//
// Every function here is pure: it takes a profile snapshot and returns the
// update to apply. Persisting the update is the caller's job.
package progression

import (
	"time"

	"github.com/example/sakura/pkg/models"
)

// XP rewards.
const (
	ReviewXP        = 10
	MomentumXP      = 5
	MilestoneXP     = 100
	TimeOfDayXP     = 50
	ExamXPPerPoint  = 10
	FlawlessXP      = 500
	momentumMinimum = 3 // streak must exceed this for the momentum bonus
	dateLayout      = "2006-01-02"
)

// Engine computes gamification side effects
type Engine struct {
	Badges     *BadgeCatalog
	Thresholds map[models.Level]int
}

// NewEngine creates an engine with the default badges and thresholds.
func NewEngine() *Engine {
	return &Engine{
		Badges:     DefaultBadges(),
		Thresholds: DefaultThresholds,
	}
}

// Today formats the calendar date of t.
func Today(t time.Time) string {
	return t.Format(dateLayout)
}

// StreakUpdate computes the daily streak change for p at now. It returns
// ok=false when p has already studied today.
func (e *Engine) StreakUpdate(p models.Profile, now time.Time) (upd models.UserUpdate, ok bool) {
	today := Today(now)
	last := p.LastStudyDate
	if last == today {
		return upd, false
	}
	yesterday := Today(now.AddDate(0, 0, -1))

	streak := 1
	switch {
	case last == yesterday:
		streak = p.Streak + 1
	case last != "" && last < yesterday:
		streak = 1
	case last == "":
		// Accounts created before dates were tracked keep their streak.
		if p.Streak > 0 {
			streak = p.Streak
		}
	}

	upd.Streak = models.Ptr(streak)
	upd.LastStudyDate = models.Ptr(today)

	if id := StreakBadgeID(streak); e.Badges.Has(id) && !p.HasBadge(id) {
		upd.Badges = append(append([]string{}, p.Badges...), id)
	}
	return upd, true
}

// ReviewOutcome computes the reward for one review. rec is the record after
// the review was applied and learned is the number of the user's items with
// an unbroken streak.
func (e *Engine) ReviewOutcome(p models.Profile, rec models.ReviewRecord, learned int, now time.Time) models.UserUpdate {
	gain := ReviewXP
	if rec.Streak > momentumMinimum {
		gain += MomentumXP
	}

	badges := append([]string{}, p.Badges...)
	award := func(id string, xp int) {
		badges = append(badges, id)
		gain += xp
	}

	for _, m := range reviewMilestones {
		id := VolumeBadgeID(m)
		if learned >= m && !p.HasBadge(id) && e.Badges.Has(id) {
			award(id, MilestoneXP)
		}
	}

	hour := now.Hour()
	if (hour >= 22 || hour <= 4) && !p.HasBadge(BadgeNightOwl) {
		award(BadgeNightOwl, TimeOfDayXP)
	}
	if hour >= 5 && hour <= 7 && !p.HasBadge(BadgeEarlyBird) {
		award(BadgeEarlyBird, TimeOfDayXP)
	}

	var upd models.UserUpdate
	upd.XP = models.Ptr(p.XP + gain)
	if len(badges) > len(p.Badges) {
		upd.Badges = badges
	}
	e.CheckLevelUp(p, &upd)
	return upd
}

// ExamOutcome computes the reward for a completed exam.
func (e *Engine) ExamOutcome(p models.Profile, result models.TestResult) models.UserUpdate {
	var upd models.UserUpdate
	gain := result.Score * ExamXPPerPoint

	if result.Total > 0 && result.Score == result.Total && !p.HasBadge(BadgeFlawless) {
		upd.Badges = append(append([]string{}, p.Badges...), BadgeFlawless)
		gain += FlawlessXP
	}

	upd.XP = models.Ptr(p.XP + gain)
	e.CheckLevelUp(p, &upd)
	return upd
}

// CheckLevelUp promotes the user by one tier when the state p would have after
// upd reaches the current tier's threshold. The promotion and the mastery badge
// of the completed tier are added to upd.
func (e *Engine) CheckLevelUp(p models.Profile, upd *models.UserUpdate) {
	next := p
	next.Badges = append([]string{}, p.Badges...)
	upd.Apply(&next)

	threshold, ok := e.Thresholds[next.Level]
	if !ok || next.XP < threshold {
		return
	}
	promoted, ok := next.Level.Next()
	if !ok {
		return
	}

	upd.Level = models.Ptr(promoted)
	if id := MasteryBadgeID(next.Level); !next.HasBadge(id) {
		upd.Badges = append(next.Badges, id)
	}
}
