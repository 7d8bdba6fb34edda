package models

// Question is a multiple-choice question used by reading, listening and mock exams
type Question struct {
	ID           string   `json:"id" yaml:"id"`
	Type         string   `json:"type" yaml:"type"` // grammar, reading, vocabulary, listening or kanji
	Question     string   `json:"question" yaml:"question"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correctIndex" yaml:"correctIndex"`
	Explanation  string   `json:"explanation" yaml:"explanation"`
}

// ReadingMaterial is a short passage with comprehension questions
type ReadingMaterial struct {
	ID          string     `json:"id" yaml:"id"`
	Level       Level      `json:"level" yaml:"level"`
	Title       string     `json:"title" yaml:"title"`
	Content     string     `json:"content" yaml:"content"`
	Translation string     `json:"translation" yaml:"translation"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// ListeningMaterial is a spoken script with comprehension questions
type ListeningMaterial struct {
	ID          string     `json:"id" yaml:"id"`
	Level       Level      `json:"level" yaml:"level"`
	Title       string     `json:"title" yaml:"title"`
	Script      string     `json:"script" yaml:"script"`
	Translation string     `json:"translation" yaml:"translation"`
	AudioURL    string     `json:"audioUrl,omitempty" yaml:"audioUrl,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions"`
}
