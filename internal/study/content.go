package study

import (
	"github.com/example/sakura/internal/storage"
	"github.com/example/sakura/pkg/models"
	"github.com/google/uuid"
)

// GetContent returns a level's catalog items followed by the matching custom
// items. An empty typ matches every type.
func (s *Service) GetContent(level models.Level, typ models.ItemType) []models.StudyItem {
	defer s.lock()()
	return s.content(level, typ)
}

// GetReadingMaterials returns the reading passages of a level.
func (s *Service) GetReadingMaterials(level models.Level) []models.ReadingMaterial {
	return s.catalog.Reading(level)
}

// GetListeningMaterials returns the listening passages of a level.
func (s *Service) GetListeningMaterials(level models.Level) []models.ListeningMaterial {
	return s.catalog.Listening(level)
}

// AddCustomItem stores a user-made item and returns it as saved. An item
// without an id gets one.
func (s *Service) AddCustomItem(item models.StudyItem) models.StudyItem {
	defer s.lock()()

	if item.ID == "" {
		item.ID = "custom_" + uuid.NewString()
	}
	item.Custom = true

	s.store.Write(storage.KeyCustomItems, append(s.customItems(), item))
	s.logger.WithField("item_id", item.ID).Info("Custom item added")
	return item
}

func (s *Service) content(level models.Level, typ models.ItemType) []models.StudyItem {
	items := s.catalog.Items(level, typ)
	for _, item := range s.customItems() {
		if item.Level != level || (typ != "" && item.Type != typ) {
			continue
		}
		items = append(items, item)
	}
	if items == nil {
		items = []models.StudyItem{}
	}
	return items
}
