package progression

import (
	"fmt"

	"github.com/example/sakura/pkg/models"
)

// Badge ids awarded by fixed rules.
const (
	BadgeWelcome   = "glorious_purpose"
	BadgeFlawless  = "flawless_victory"
	BadgeNightOwl  = "night_owl"
	BadgeEarlyBird = "early_bird"
)

var (
	streakMilestones  = []int{3, 7, 14, 30, 60, 100, 365}
	volumeMilestones  = []int{10, 25, 50, 100, 200, 500, 1000}
	sessionMilestones = []int{5, 10, 25, 50, 100}

	// learned-item counts that unlock a volume badge from a review
	reviewMilestones = []int{10, 25, 50, 100}
)

// StreakBadgeID returns the id of the badge for an n-day streak.
func StreakBadgeID(n int) string { return fmt.Sprintf("streak_%d", n) }

// MasteryBadgeID returns the id of the badge for completing a level.
func MasteryBadgeID(level models.Level) string { return "master_" + string(level) }

// VolumeBadgeID returns the id of the badge for n learned items.
func VolumeBadgeID(n int) string { return fmt.Sprintf("total_kanji_%d", n) }

// BadgeCatalog is the fixed set of badges a user can earn
type BadgeCatalog struct {
	badges []models.Badge
	byID   map[string]models.Badge
}

// NewBadgeCatalog indexes badges by id. Later duplicates are ignored.
func NewBadgeCatalog(badges []models.Badge) *BadgeCatalog {
	c := &BadgeCatalog{byID: make(map[string]models.Badge, len(badges))}
	for _, b := range badges {
		if _, dup := c.byID[b.ID]; dup {
			continue
		}
		c.badges = append(c.badges, b)
		c.byID[b.ID] = b
	}
	return c
}

// Lookup returns the definition of id.
func (c *BadgeCatalog) Lookup(id string) (models.Badge, bool) {
	b, ok := c.byID[id]
	return b, ok
}

// Has reports whether id is a defined badge.
func (c *BadgeCatalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// All returns every badge in catalog order.
func (c *BadgeCatalog) All() []models.Badge {
	return append([]models.Badge(nil), c.badges...)
}

// DefaultBadges builds the application's badge catalog.
func DefaultBadges() *BadgeCatalog {
	var badges []models.Badge

	badges = append(badges, models.Badge{
		ID: BadgeWelcome, Name: "Glorious Purpose",
		Description: "Logging in for the first time.", Category: "Special",
	})

	streakNames := []string{"Training Arc Start", "Super Saiyan", "Plus Ultra", "Hokage Way", "Titan Shifter", "One Punch", "God Tier"}
	for i, days := range streakMilestones {
		badges = append(badges, models.Badge{
			ID: StreakBadgeID(days), Name: streakNames[i],
			Description: fmt.Sprintf("Maintained a %d-day streak", days), Category: "Streak",
		})
	}

	rankNames := map[models.Level]string{
		models.LevelN5: "Genin", models.LevelN4: "Chunin", models.LevelN3: "Jonin",
		models.LevelN2: "Hashira", models.LevelN1: "Sorcerer King",
	}
	examNames := map[models.Level]string{
		models.LevelN5: "Hunter License", models.LevelN4: "State Alchemist", models.LevelN3: "Special Grade",
		models.LevelN2: "S-Class Hero", models.LevelN1: "Pirate King",
	}
	for _, lvl := range models.Levels {
		badges = append(badges, models.Badge{
			ID: MasteryBadgeID(lvl), Name: fmt.Sprintf("%s %s", lvl, rankNames[lvl]),
			Description: fmt.Sprintf("Completed all %s modules", lvl), Category: "Mastery",
		})
	}
	for _, lvl := range models.Levels {
		badges = append(badges, models.Badge{
			ID: "exam_" + string(lvl), Name: examNames[lvl],
			Description: fmt.Sprintf("Passed the %s Mock Exam", lvl), Category: "Exam",
		})
	}

	for _, n := range volumeMilestones {
		badges = append(badges,
			models.Badge{ID: VolumeBadgeID(n), Name: fmt.Sprintf("%d Kanji", n), Description: fmt.Sprintf("Learned %d Kanji", n), Category: "Kanji"},
			models.Badge{ID: fmt.Sprintf("total_vocab_%d", n), Name: fmt.Sprintf("%d Words", n), Description: fmt.Sprintf("Learned %d Words", n), Category: "Vocab"},
		)
	}

	sessionNames := []string{"Shadow Clone", "Spirit Gun", "Rasengan", "Kamehameha", "Serious Series"}
	for i, n := range sessionMilestones {
		badges = append(badges, models.Badge{
			ID: fmt.Sprintf("session_%d", n), Name: sessionNames[i],
			Description: fmt.Sprintf("Completed %d study sessions", n), Category: "Time",
		})
	}

	badges = append(badges,
		models.Badge{ID: BadgeFlawless, Name: "Flawless Victory", Description: "Score 100% on any Mock Exam", Category: "Exam"},
		models.Badge{ID: BadgeNightOwl, Name: "Night Owl", Description: "Complete a review session after 10 PM", Category: "Time"},
		models.Badge{ID: BadgeEarlyBird, Name: "Early Bird", Description: "Complete a review session before 8 AM", Category: "Time"},
		models.Badge{ID: "scholar", Name: "Scholar", Description: "Review 50 distinct items", Category: "Mastery"},
		models.Badge{ID: "kana_hashira", Name: "Hiragana Hashira", Description: "Get a perfect score on the Hiragana Quiz", Category: "Kana"},
		models.Badge{ID: "katakana_titan", Name: "Katakana Titan", Description: "Get a perfect score on the Katakana Quiz", Category: "Kana"},
		models.Badge{ID: "thunder_breathing", Name: "Thunder Breathing", Description: "Complete a Kana quiz in under 30 seconds with 100% accuracy", Category: "Kana"},
		models.Badge{ID: "mongrel", Name: "Mongrel", Description: "Made a mistake? Know your place!", Category: "Shame"},
	)

	return NewBadgeCatalog(badges)
}
