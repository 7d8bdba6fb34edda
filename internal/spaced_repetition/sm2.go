package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/sakura/pkg/models"
)

const dayMillis = 24 * 60 * 60 * 1000

// SM2 implements a simplified SuperMemo-2 schedule: fixed learning steps,
// then multiplicative growth by the item's ease factor.
type SM2 struct {
	// Ratings at or above this value count as remembered
	PassThreshold int
	// Intervals in days for the first successful reviews
	LearningSteps []float64
	// Interval in days after a forgotten review
	RelearnInterval float64
	// Ease factor of a freshly created record
	InitialEaseFactor float64
	// Number of items a due queue is padded up to with unstudied items
	WorkingSet int
}

// NewSM2 creates a new SM2 instance with default settings
func NewSM2() *SM2 {
	return &SM2{
		PassThreshold:     3,
		LearningSteps:     []float64{1, 3},
		RelearnInterval:   0.5,
		InitialEaseFactor: 2.5,
		WorkingSet:        10,
	}
}

// QualityResponse represents the quality of response in SM-2
type QualityResponse int

const (
	// Complete blackout, unable to recall
	QualityBlackout QualityResponse = 0
	// Incorrect response but remembered upon seeing the correct answer
	QualityIncorrect QualityResponse = 1
	// Incorrect response but the correct answer felt familiar
	QualityIncorrectFamiliar QualityResponse = 2
	// Correct response but required significant effort
	QualityCorrectDifficult QualityResponse = 3
	// Correct response after some hesitation
	QualityCorrectHesitation QualityResponse = 4
	// Perfect response with no hesitation
	QualityPerfect QualityResponse = 5
)

// NewRecord returns the state of an item that has never been reviewed.
func (sm *SM2) NewRecord(itemID string, now time.Time) models.ReviewRecord {
	return models.ReviewRecord{
		ItemID:     itemID,
		NextReview: now.UnixMilli(),
		Interval:   0,
		EaseFactor: sm.InitialEaseFactor,
		Streak:     0,
	}
}

// Passed reports whether quality counts as a successful recall.
func (sm *SM2) Passed(quality QualityResponse) bool {
	return int(quality) >= sm.PassThreshold
}

// Process applies one review to rec and schedules its next review from now.
func (sm *SM2) Process(rec *models.ReviewRecord, quality QualityResponse, now time.Time) {
	if sm.Passed(quality) {
		if rec.Streak < len(sm.LearningSteps) {
			rec.Interval = sm.LearningSteps[rec.Streak]
		} else {
			rec.Interval = math.Round(rec.Interval * rec.EaseFactor)
		}
		rec.Streak++
	} else {
		rec.Streak = 0
		rec.Interval = sm.RelearnInterval
	}

	rec.NextReview = now.UnixMilli() + int64(rec.Interval*dayMillis)
}

// IsDue reports whether rec may be reviewed at now.
func (sm *SM2) IsDue(rec models.ReviewRecord, now time.Time) bool {
	return rec.NextReview <= now.UnixMilli()
}

// IsLearned reports whether the item's latest review streak is unbroken.
func (sm *SM2) IsLearned(rec models.ReviewRecord) bool {
	return rec.Streak > 0
}

// GetDueItems returns the items whose records are due, in catalog order. When
// fewer than WorkingSet are due, the result is padded with never-reviewed items
// up to WorkingSet. A larger due set is returned whole.
func (sm *SM2) GetDueItems(items []models.StudyItem, records map[string]models.ReviewRecord, now time.Time) []models.StudyItem {
	due := make([]models.StudyItem, 0, sm.WorkingSet)
	for _, item := range items {
		if rec, ok := records[item.ID]; ok && sm.IsDue(rec, now) {
			due = append(due, item)
		}
	}
	if len(due) >= sm.WorkingSet {
		return due
	}

	for _, item := range items {
		if len(due) >= sm.WorkingSet {
			break
		}
		if _, ok := records[item.ID]; !ok {
			due = append(due, item)
		}
	}
	return due
}
