package study

import (
	"github.com/example/sakura/internal/exam"
	"github.com/example/sakura/internal/storage"
	"github.com/example/sakura/pkg/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SaveResult appends a finished exam to the signed-in user's history and
// awards its XP. The user id is always taken from the session; a missing id
// or date is filled in. It does nothing while signed out.
func (s *Service) SaveResult(result models.TestResult) {
	defer s.lock()()

	userID := s.currentID()
	if userID == "" {
		return
	}
	result.UserID = userID
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.Date == 0 {
		result.Date = s.now().UnixMilli()
	}

	s.store.Write(storage.KeyResults, append(s.results(), result))
	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"score":   result.Score,
		"total":   result.Total,
	}).Info("Exam result saved")

	s.checkDailyStreak()

	_, account, ok := s.current()
	if !ok {
		return
	}
	s.update(s.engine.ExamOutcome(account.Profile, result))
}

// GetHistory returns the signed-in user's exam results in the order they were saved.
func (s *Service) GetHistory() []models.TestResult {
	defer s.lock()()

	userID := s.currentID()
	if userID == "" {
		return []models.TestResult{}
	}
	return exam.ForUser(s.results(), userID)
}

// GetExamQuestions builds up to count multiple-choice questions from a
// level's items, custom items included.
func (s *Service) GetExamQuestions(level models.Level, count int) []models.Question {
	defer s.lock()()
	return s.exams.BuildQuestions(s.content(level, ""), count)
}
