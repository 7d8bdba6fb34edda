package study

import (
	"math"
	"strings"

	"github.com/example/sakura/internal/spaced_repetition"
	"github.com/example/sakura/internal/storage"
	"github.com/example/sakura/pkg/models"
	"github.com/sirupsen/logrus"
)

// Progress is the percentage of a level's items per type that the user has
// recalled successfully at least once in their current streak.
type Progress struct {
	Kanji      int `json:"kanji"`
	Vocabulary int `json:"vocabulary"`
	Grammar    int `json:"grammar"`
}

// DueCount is the number of reviews waiting for one account.
type DueCount struct {
	UserID   string
	Username string
	Name     string
	Due      int
}

// CheckDailyStreak advances, keeps or resets the signed-in user's daily streak.
func (s *Service) CheckDailyStreak() {
	defer s.lock()()
	s.checkDailyStreak()
}

func (s *Service) checkDailyStreak() {
	_, account, ok := s.current()
	if !ok {
		return
	}
	if upd, changed := s.engine.StreakUpdate(account.Profile, s.now()); changed {
		s.update(upd)
	}
}

// RecordReview applies a quality rating to an item for the signed-in user and
// awards the XP and badges it earns. It does nothing while signed out.
func (s *Service) RecordReview(itemID string, quality int) {
	defer s.lock()()

	userID := s.currentID()
	if userID == "" {
		return
	}
	now := s.now()

	records := s.reviews()
	key := models.ReviewKey(userID, itemID)
	rec, ok := records[key]
	if !ok {
		rec = s.scheduler.NewRecord(itemID, now)
	}
	s.scheduler.Process(&rec, spaced_repetition.QualityResponse(quality), now)
	records[key] = rec
	s.store.Write(storage.KeyReviews, records)

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"item_id":  itemID,
		"quality":  quality,
		"interval": rec.Interval,
	}).Debug("Review recorded")

	s.checkDailyStreak()

	_, account, ok := s.current()
	if !ok {
		return
	}
	learned := 0
	prefix := userID + ":"
	for k, r := range records {
		if strings.HasPrefix(k, prefix) && s.scheduler.IsLearned(r) {
			learned++
		}
	}
	s.update(s.engine.ReviewOutcome(account.Profile, rec, learned, now))
}

// GetDueItems returns the items of a level to review now, padded with new
// items when few are due. An empty typ matches every type. It returns nothing
// while signed out.
func (s *Service) GetDueItems(level models.Level, typ models.ItemType) []models.StudyItem {
	defer s.lock()()

	userID := s.currentID()
	if userID == "" {
		return []models.StudyItem{}
	}
	return s.scheduler.GetDueItems(s.content(level, typ), s.userRecords(userID), s.now())
}

// GetProgress reports the share of a level's items per type that the
// signed-in user has learned.
func (s *Service) GetProgress(level models.Level) Progress {
	defer s.lock()()

	userID := s.currentID()
	if userID == "" {
		return Progress{}
	}
	records := s.userRecords(userID)

	counts := make(map[models.ItemType]int)
	totals := make(map[models.ItemType]int)
	for _, item := range s.content(level, "") {
		totals[item.Type]++
		if rec, ok := records[item.ID]; ok && s.scheduler.IsLearned(rec) {
			counts[item.Type]++
		}
	}

	percent := func(t models.ItemType) int {
		if totals[t] == 0 {
			return 0
		}
		return int(math.Round(float64(counts[t]) / float64(totals[t]) * 100))
	}
	return Progress{
		Kanji:      percent(models.ItemKanji),
		Vocabulary: percent(models.ItemVocabulary),
		Grammar:    percent(models.ItemGrammar),
	}
}

// DueSummary counts the due reviews of every account that has any. The
// session is not touched.
func (s *Service) DueSummary() []DueCount {
	defer s.lock()()

	now := s.now()
	records := s.reviews()
	due := make(map[string]int)
	for key, rec := range records {
		userID, _, ok := strings.Cut(key, ":")
		if ok && s.scheduler.IsDue(rec, now) {
			due[userID]++
		}
	}

	var summary []DueCount
	for _, a := range s.accounts() {
		if n := due[a.ID]; n > 0 {
			summary = append(summary, DueCount{UserID: a.ID, Username: a.Username, Name: a.Name, Due: n})
		}
	}
	return summary
}

// userRecords returns the records of one user keyed by item id.
func (s *Service) userRecords(userID string) map[string]models.ReviewRecord {
	prefix := userID + ":"
	out := make(map[string]models.ReviewRecord)
	for key, rec := range s.reviews() {
		if itemID, ok := strings.CutPrefix(key, prefix); ok {
			out[itemID] = rec
		}
	}
	return out
}
