package models

// ExamType distinguishes full mock exams from short quizzes
type ExamType string

const (
	ExamMock ExamType = "mock"
	ExamMini ExamType = "mini"
)

// TestResult records one completed exam attempt. It is never modified after it is saved.
type TestResult struct {
	ID     string   `json:"id"`
	UserID string   `json:"userId"`
	Date   int64    `json:"date"` // Unix milliseconds
	Score  int      `json:"score"`
	Total  int      `json:"total"`
	Type   ExamType `json:"type"`
	Level  Level    `json:"level"`
}
