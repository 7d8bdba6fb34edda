package progression

import "github.com/example/sakura/pkg/models"

// DefaultThresholds is the cumulative XP needed to leave each tier.
// The top tier has no threshold.
var DefaultThresholds = map[models.Level]int{
	models.LevelN5: 1000,
	models.LevelN4: 2500,
	models.LevelN3: 5000,
	models.LevelN2: 10000,
}
