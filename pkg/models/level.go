package models

// Level is a JLPT proficiency tier. N5 is the entry tier and N1 the most advanced.
type Level string

const (
	LevelN5 Level = "N5"
	LevelN4 Level = "N4"
	LevelN3 Level = "N3"
	LevelN2 Level = "N2"
	LevelN1 Level = "N1"
)

// Levels lists every tier from beginner to most advanced.
var Levels = []Level{LevelN5, LevelN4, LevelN3, LevelN2, LevelN1}

// Tier returns the 1-based position of the level, or 0 for an unknown level.
func (l Level) Tier() int {
	for i, lvl := range Levels {
		if lvl == l {
			return i + 1
		}
	}
	return 0
}

// Valid reports whether l is one of the five known tiers.
func (l Level) Valid() bool {
	return l.Tier() > 0
}

// Next returns the tier above l. ok is false for the top tier and for unknown levels.
func (l Level) Next() (next Level, ok bool) {
	t := l.Tier()
	if t == 0 || t == len(Levels) {
		return "", false
	}
	return Levels[t], true
}
