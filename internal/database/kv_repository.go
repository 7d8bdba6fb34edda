package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// KVRepository stores string values by key in the kv_store table.
// It satisfies storage.Backend.
type KVRepository struct {
	db *sqlx.DB
}

// NewKVRepository creates a new repository instance
func NewKVRepository(db *sqlx.DB) *KVRepository {
	return &KVRepository{db: db}
}

// Get returns the value stored under key. ok is false when the key is absent.
func (r *KVRepository) Get(key string) (string, bool, error) {
	var payload string
	err := r.db.Get(&payload, r.db.Rebind("SELECT payload FROM kv_store WHERE storage_key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return payload, true, nil
}

// Set inserts or replaces the value stored under key
func (r *KVRepository) Set(key, value string) error {
	query := r.db.Rebind(`
		INSERT INTO kv_store (storage_key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (storage_key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP
	`)
	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *KVRepository) Delete(key string) error {
	if _, err := r.db.Exec(r.db.Rebind("DELETE FROM kv_store WHERE storage_key = ?"), key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Keys returns every stored key in ascending order
func (r *KVRepository) Keys() ([]string, error) {
	var keys []string
	if err := r.db.Select(&keys, "SELECT storage_key FROM kv_store ORDER BY storage_key"); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}
