package leveldb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/statuswatch/statuswatch/internal/cache"
)

// Store keeps cache entries in an embedded leveldb database, for single-node
// deployments that want the cache to survive restarts. leveldb has no native
// TTL, so expiry is enforced on read: an expired row is deleted and reported
// absent.
type Store struct {
	db *leveldb.DB
}

func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("leveldb open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Get(ctx context.Context, key string) (*cache.Entry, error) {
	raw, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leveldb get: %w", err)
	}

	var e cache.Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// a row we cannot decode is as good as absent
		_ = s.db.Delete([]byte(key), nil)
		return nil, nil
	}
	if !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt) {
		_ = s.db.Delete([]byte(key), nil)
		return nil, nil
	}
	return &e, nil
}

func (s *Store) Put(ctx context.Context, e cache.Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("leveldb encode: %w", err)
	}
	if err := s.db.Put([]byte(e.Key), raw, nil); err != nil {
		return fmt.Errorf("leveldb put: %w", err)
	}
	return nil
}
