package models

import "time"

// ReviewRecord tracks the spaced repetition state of one item for one user
type ReviewRecord struct {
	ItemID     string  `json:"itemId"`
	NextReview int64   `json:"nextReview"` // Unix milliseconds
	Interval   float64 `json:"interval"`   // Days
	EaseFactor float64 `json:"easeFactor"`
	Streak     int     `json:"streak"` // Consecutive successful reviews
}

// NextReviewTime returns NextReview as a time.Time.
func (r ReviewRecord) NextReviewTime() time.Time {
	return time.UnixMilli(r.NextReview)
}

// ReviewKey builds the composite storage key of a user's record for an item.
func ReviewKey(userID, itemID string) string {
	return userID + ":" + itemID
}
