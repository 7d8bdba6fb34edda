package models

// ItemType is the kind of a study item
type ItemType string

const (
	ItemKanji      ItemType = "kanji"
	ItemVocabulary ItemType = "vocabulary"
	ItemGrammar    ItemType = "grammar"
)

// ItemTypes lists the study item kinds in display order.
var ItemTypes = []ItemType{ItemKanji, ItemVocabulary, ItemGrammar}

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	switch t {
	case ItemKanji, ItemVocabulary, ItemGrammar:
		return true
	}
	return false
}

// StudyItem is a single kanji, word or grammar point that can be reviewed
type StudyItem struct {
	ID                 string   `json:"id" yaml:"id"`
	Level              Level    `json:"level" yaml:"level"`
	Type               ItemType `json:"type" yaml:"type"`
	Question           string   `json:"question" yaml:"question"` // The kanji or word
	Reading            string   `json:"reading" yaml:"reading"`
	Meaning            string   `json:"meaning" yaml:"meaning"`
	Example            string   `json:"example" yaml:"example"`
	ExampleTranslation string   `json:"exampleTranslation" yaml:"exampleTranslation"`
	AudioURL           string   `json:"audioUrl,omitempty" yaml:"audioUrl,omitempty"`
	Tags               []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	// Custom marks items added by a user rather than shipped with the catalog.
	Custom bool `json:"custom,omitempty" yaml:"-"`
}
