// Package catalog holds the read-only study content: kanji, vocabulary and
// grammar items plus reading and listening passages, keyed by level.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/example/sakura/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultAsset []byte

// DefaultPlaceholders is the number of generated items per level and type.
const DefaultPlaceholders = 20

type document struct {
	Items     []models.StudyItem         `yaml:"items"`
	Reading   []models.ReadingMaterial   `yaml:"reading"`
	Listening []models.ListeningMaterial `yaml:"listening"`
}

// Catalog is an immutable set of study content. Lookups return copies.
type Catalog struct {
	items     []models.StudyItem
	byID      map[string]int
	reading   []models.ReadingMaterial
	listening []models.ListeningMaterial
}

// Load parses the embedded asset and appends placeholders generated items
// for every level and type.
func Load(placeholders int) (*Catalog, error) {
	return Parse(defaultAsset, placeholders)
}

// Parse builds a catalog from a YAML document.
func Parse(data []byte, placeholders int) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	items := make([]models.StudyItem, 0, len(doc.Items)+placeholders*len(models.Levels)*len(models.ItemTypes))
	for i, item := range doc.Items {
		if item.ID == "" {
			item.ID = fmt.Sprintf("static_%d", i+1)
		}
		items = append(items, item)
	}
	items = append(items, Placeholders(placeholders)...)

	c := &Catalog{reading: doc.Reading, listening: doc.Listening}
	if err := c.setItems(items); err != nil {
		return nil, err
	}
	return c, nil
}

// Placeholders generates n filler items per level and type with ids gen_<level>_<type>_<i>.
func Placeholders(n int) []models.StudyItem {
	var items []models.StudyItem
	for _, lvl := range models.Levels {
		for _, typ := range models.ItemTypes {
			for i := 1; i <= n; i++ {
				items = append(items, models.StudyItem{
					ID:                 fmt.Sprintf("gen_%s_%s_%d", lvl, typ, i),
					Level:              lvl,
					Type:               typ,
					Question:           fmt.Sprintf("%s %s-%d", placeholderGlyph(typ), lvl, i),
					Reading:            fmt.Sprintf("yomi-%d", i),
					Meaning:            fmt.Sprintf("Sample %s %s content #%d (Placeholder)", lvl, typ, i),
					Example:            fmt.Sprintf("これは%sの%sの例です。", lvl, typ),
					ExampleTranslation: fmt.Sprintf("This is an example for %s %s.", lvl, typ),
				})
			}
		}
	}
	return items
}

func placeholderGlyph(t models.ItemType) string {
	switch t {
	case models.ItemKanji:
		return "漢"
	case models.ItemGrammar:
		return "Grammar"
	default:
		return "Word"
	}
}

func (c *Catalog) setItems(items []models.StudyItem) error {
	byID := make(map[string]int, len(items))
	for i, item := range items {
		if !item.Level.Valid() {
			return fmt.Errorf("item %q: unknown level %q", item.ID, item.Level)
		}
		if !item.Type.Valid() {
			return fmt.Errorf("item %q: unknown type %q", item.ID, item.Type)
		}
		if _, dup := byID[item.ID]; dup {
			return fmt.Errorf("duplicate item id %q", item.ID)
		}
		byID[item.ID] = i
	}
	c.items = items
	c.byID = byID
	return nil
}

// WithItems returns a new catalog that also contains extra. Items whose id
// is already present are skipped and counted in the second return value.
func (c *Catalog) WithItems(extra []models.StudyItem) (*Catalog, int, error) {
	items := append([]models.StudyItem{}, c.items...)
	seen := make(map[string]bool, len(extra))
	skipped := 0
	for _, item := range extra {
		if _, ok := c.byID[item.ID]; ok || seen[item.ID] {
			skipped++
			continue
		}
		seen[item.ID] = true
		items = append(items, item)
	}

	next := &Catalog{reading: c.reading, listening: c.listening}
	if err := next.setItems(items); err != nil {
		return nil, 0, err
	}
	return next, skipped, nil
}

// Items returns the items of a level in catalog order. An empty typ matches every type.
func (c *Catalog) Items(level models.Level, typ models.ItemType) []models.StudyItem {
	var out []models.StudyItem
	for _, item := range c.items {
		if item.Level != level {
			continue
		}
		if typ != "" && item.Type != typ {
			continue
		}
		out = append(out, item)
	}
	return out
}

// All returns every item in catalog order.
func (c *Catalog) All() []models.StudyItem {
	return append([]models.StudyItem{}, c.items...)
}

// Item looks up a single item by id.
func (c *Catalog) Item(id string) (models.StudyItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.StudyItem{}, false
	}
	return c.items[i], true
}

func (c *Catalog) Len() int { return len(c.items) }

// Reading returns the reading passages of a level.
func (c *Catalog) Reading(level models.Level) []models.ReadingMaterial {
	var out []models.ReadingMaterial
	for _, m := range c.reading {
		if m.Level == level {
			out = append(out, m)
		}
	}
	return out
}

// Listening returns the listening passages of a level.
func (c *Catalog) Listening(level models.Level) []models.ListeningMaterial {
	var out []models.ListeningMaterial
	for _, m := range c.listening {
		if m.Level == level {
			out = append(out, m)
		}
	}
	return out
}
