package postgres

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
	const q = `
INSERT INTO kv_store (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value;`
	_, err := s.db.ExecContext(ctx, q, key, string(value))
	return err
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key=$1`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, share.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
