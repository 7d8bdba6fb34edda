// Package storage persists application state as JSON values under string keys.
// Storage failures never reach callers: reads fall back to a default and writes
// are logged and dropped.
package storage

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// Keys used by the application, relative to the store prefix.
const (
	KeyUsers         = "users"
	KeyCurrentUserID = "current_user_id"
	KeyReviews       = "srs"
	KeyResults       = "results"
	KeyCustomItems   = "custom_items"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "sakura_sensei_v2_"

// Backend is the raw string-keyed persistence the store sits on
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Store reads and writes JSON values through a Backend
type Store struct {
	backend Backend
	prefix  string
	logger  *logrus.Entry
}

// New creates a store over backend. An empty prefix selects DefaultPrefix.
func New(backend Backend, prefix string, logger *logrus.Entry) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{
		backend: backend,
		prefix:  prefix,
		logger:  logger,
	}
}

// Read decodes the value stored under key. It returns def when the key is
// missing, holds the literal "undefined" or "null", or cannot be decoded.
func Read[T any](s *Store, key string, def T) T {
	raw, ok, err := s.backend.Get(s.prefix + key)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to read key, using default")
		return def
	}
	if !ok || raw == "" || raw == "undefined" || raw == "null" {
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to parse stored value, using default")
		return def
	}
	return v
}

// Write encodes value as JSON and persists it under key. Failures are logged only.
func (s *Store) Write(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Error("Failed to encode value")
		return
	}
	if err := s.backend.Set(s.prefix+key, string(data)); err != nil {
		s.logger.WithError(err).WithField("key", key).Error("Failed to save value")
	}
}

// Remove deletes key. Failures are logged only.
func (s *Store) Remove(key string) {
	if err := s.backend.Delete(s.prefix + key); err != nil {
		s.logger.WithError(err).WithField("key", key).Error("Failed to remove value")
	}
}
