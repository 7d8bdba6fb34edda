// Package config reads process settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/example/sakura/internal/catalog"
	"github.com/example/sakura/internal/database"
	"github.com/example/sakura/internal/storage"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Defaults for the notification window, in local hours.
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Config holds every setting of the process.
type Config struct {
	Database              database.Options
	StoragePrefix         string
	CatalogFile           string
	PlaceholderItems      int
	TelegramToken         string
	TelegramChatID        int64
	NotificationStartHour int
	NotificationEndHour   int
	LogLevel              logrus.Level
	SeedDemoUser          bool
}

// Load reads the given .env files (".env" when none are named) into the
// environment without overriding variables that are already set, then builds
// the configuration. Missing files are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Database: database.Options{
			Type: strings.ToLower(strings.TrimSpace(getenv("DB_TYPE"))),
			Path: getenv("DB_PATH"),
			DSN:  getenv("DATABASE_URL"),
		},
		StoragePrefix:         getenv("STORAGE_PREFIX"),
		CatalogFile:           getenv("CATALOG_FILE"),
		PlaceholderItems:      intOr(getenv("PLACEHOLDER_ITEMS"), catalog.DefaultPlaceholders, 0, 1000),
		TelegramToken:         getenv("TELEGRAM_BOT_TOKEN"),
		NotificationStartHour: intOr(getenv("NOTIFICATION_START_HOUR"), DefaultNotificationStartHour, 0, 23),
		NotificationEndHour:   intOr(getenv("NOTIFICATION_END_HOUR"), DefaultNotificationEndHour, 0, 23),
		LogLevel:              logrus.InfoLevel,
		SeedDemoUser:          true,
	}

	switch cfg.Database.Type {
	case "":
		cfg.Database.Type = "sqlite"
	case "sqlite", "sqlite3":
		cfg.Database.Type = "sqlite"
	case "postgres", "postgresql":
		cfg.Database.Type = "postgres"
		if cfg.Database.DSN == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_TYPE is postgres")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.Database.Type)
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/sakura.db"
	}
	if cfg.StoragePrefix == "" {
		cfg.StoragePrefix = storage.DefaultPrefix
	}

	if v := getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", v, err)
		}
		cfg.TelegramChatID = id
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		if lvl, err := logrus.ParseLevel(v); err == nil {
			cfg.LogLevel = lvl
		}
	}
	if v := getenv("SEED_DEMO_USER"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SeedDemoUser = b
		}
	}
	return cfg, nil
}

// TelegramEnabled reports whether reminders can be sent through Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// intOr parses v, returning def when it is empty, malformed or outside [min, max].
func intOr(v string, def, min, max int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < min || n > max {
		return def
	}
	return n
}
