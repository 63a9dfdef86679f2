package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bryanwahyu/critique/internal/domain/share"
)

// KVStore keeps whole JSON records in the kv_store table.
type KVStore struct {
	db *sql.DB
}

func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	const q = "INSERT INTO kv_store (`key`, `value`) VALUES (?, ?) ON DUPLICATE KEY UPDATE `value`=VALUES(`value`)"
	_, err := s.db.ExecContext(ctx, q, key, jsonOrEmpty(value))
	return err
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	const q = "SELECT `value` FROM kv_store WHERE `key`=?"
	var v []byte
	if err := s.db.QueryRowContext(ctx, q, key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, share.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}
