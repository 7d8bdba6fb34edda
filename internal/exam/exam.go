// Package exam assembles mock-exam questions from catalog items and keeps
// the helpers used by the append-only result ledger.
package exam

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/example/sakura/pkg/models"
	"github.com/google/uuid"
)

// DistractorCount is the number of wrong options offered next to the answer.
const DistractorCount = 3

const blank = "＿＿＿"

// Builder creates exam questions. It is not safe for concurrent use because
// of the shared random source.
type Builder struct {
	rnd *rand.Rand
}

// NewBuilder creates a builder. A nil rnd is seeded from the clock.
func NewBuilder(rnd *rand.Rand) *Builder {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Builder{rnd: rnd}
}

// BuildQuestions picks up to count items at random and turns each into a
// multiple-choice question. Grammar items whose example contains the grammar
// point become fill-in-the-blank questions; the rest ask for the meaning.
func (b *Builder) BuildQuestions(items []models.StudyItem, count int) []models.Question {
	pool := append([]models.StudyItem{}, items...)
	b.rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if count >= 0 && len(pool) > count {
		pool = pool[:count]
	}

	questions := make([]models.Question, 0, len(pool))
	for _, item := range pool {
		if q, ok := b.blankQuestion(item, items); ok {
			questions = append(questions, q)
			continue
		}
		questions = append(questions, b.meaningQuestion(item, items))
	}
	return questions
}

func (b *Builder) meaningQuestion(item models.StudyItem, all []models.StudyItem) models.Question {
	answer := item.Meaning
	wrong := b.distractors(item, all, func(s models.StudyItem) string { return s.Meaning })
	options, correct := b.shuffleOptions(answer, wrong)

	return models.Question{
		ID:           "exam_" + item.ID,
		Type:         string(item.Type),
		Question:     fmt.Sprintf("「%s」の意味は何ですか？", item.Question),
		Options:      options,
		CorrectIndex: correct,
		Explanation:  explanation(item),
	}
}

func (b *Builder) blankQuestion(item models.StudyItem, all []models.StudyItem) (models.Question, bool) {
	if item.Type != models.ItemGrammar {
		return models.Question{}, false
	}
	point := grammarPoint(item.Question)
	if point == "" || !strings.Contains(item.Example, point) {
		return models.Question{}, false
	}

	wrong := b.distractors(item, all, func(s models.StudyItem) string { return grammarPoint(s.Question) })
	options, correct := b.shuffleOptions(point, wrong)

	return models.Question{
		ID:           "exam_" + item.ID,
		Type:         string(item.Type),
		Question:     replaceWithBlank(item.Example, point),
		Options:      options,
		CorrectIndex: correct,
		Explanation:  explanation(item),
	}, true
}

// distractors collects up to DistractorCount distinct wrong answers, taking
// items of the same type first.
func (b *Builder) distractors(item models.StudyItem, all []models.StudyItem, answerOf func(models.StudyItem) string) []string {
	same := make([]models.StudyItem, 0, len(all))
	other := make([]models.StudyItem, 0, len(all))
	for _, s := range all {
		if s.ID == item.ID {
			continue
		}
		if s.Type == item.Type {
			same = append(same, s)
		} else {
			other = append(other, s)
		}
	}
	b.rnd.Shuffle(len(same), func(i, j int) { same[i], same[j] = same[j], same[i] })
	b.rnd.Shuffle(len(other), func(i, j int) { other[i], other[j] = other[j], other[i] })

	seen := map[string]bool{answerOf(item): true}
	options := make([]string, 0, DistractorCount)
	for _, s := range append(same, other...) {
		if len(options) == DistractorCount {
			break
		}
		a := answerOf(s)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		options = append(options, a)
	}
	return options
}

func (b *Builder) shuffleOptions(answer string, wrong []string) ([]string, int) {
	options := append([]string{answer}, wrong...)
	correct := 0
	b.rnd.Shuffle(len(options), func(i, j int) {
		if i == correct {
			correct = j
		} else if j == correct {
			correct = i
		}
		options[i], options[j] = options[j], options[i]
	})
	return options, correct
}

// grammarPoint strips the attachment marker from a grammar pattern such as 〜です.
func grammarPoint(q string) string {
	return strings.TrimSpace(strings.TrimLeft(q, "〜~"))
}

// replaceWithBlank replaces the first occurrence of word in sentence with a blank
func replaceWithBlank(sentence, word string) string {
	return strings.Replace(sentence, word, blank, 1)
}

func explanation(item models.StudyItem) string {
	if item.Reading == "" {
		return fmt.Sprintf("%s: %s", item.Question, item.Meaning)
	}
	return fmt.Sprintf("%s (%s): %s", item.Question, item.Reading, item.Meaning)
}

// Score counts the answers that match the questions' correct options.
// Missing answers count as wrong.
func Score(questions []models.Question, answers []int) int {
	score := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectIndex {
			score++
		}
	}
	return score
}

// NewResult creates a ledger entry for a finished exam.
func NewResult(userID string, level models.Level, typ models.ExamType, score, total int, now time.Time) models.TestResult {
	return models.TestResult{
		ID:     uuid.NewString(),
		UserID: userID,
		Date:   now.UnixMilli(),
		Score:  score,
		Total:  total,
		Type:   typ,
		Level:  level,
	}
}

// ForUser returns the entries of one user in ledger order.
func ForUser(results []models.TestResult, userID string) []models.TestResult {
	out := make([]models.TestResult, 0)
	for _, r := range results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// AppendNew appends the entries of incoming whose id is not yet in the
// ledger and reports how many were added.
func AppendNew(ledger, incoming []models.TestResult) ([]models.TestResult, int) {
	seen := make(map[string]bool, len(ledger))
	for _, r := range ledger {
		seen[r.ID] = true
	}
	added := 0
	for _, r := range incoming {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		ledger = append(ledger, r)
		added++
	}
	return ledger, added
}
