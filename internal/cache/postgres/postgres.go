package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/statuswatch/statuswatch/internal/cache"
)

var _ cache.Store = (*Store)(nil)

// Store keeps cache entries in postgres so sibling processes share one cache.
// Schema:
//
//	CREATE TABLE IF NOT EXISTS external_cache (
//	    key        TEXT PRIMARY KEY,
//	    payload    BYTEA NOT NULL,
//	    stored_at  TIMESTAMPTZ NOT NULL,
//	    expires_at TIMESTAMPTZ NOT NULL
//	);
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Get(ctx context.Context, key string) (*cache.Entry, error) {
	var e cache.Entry
	err := s.pool.QueryRow(ctx,
		`SELECT key, payload, stored_at, expires_at
		   FROM external_cache WHERE key = $1`,
		key,
	).Scan(&e.Key, &e.Payload, &e.StoredAt, &e.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select cache row: %w", err)
	}
	return &e, nil
}

func (s *Store) Put(ctx context.Context, e cache.Entry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO external_cache (key, payload, stored_at, expires_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (key) DO UPDATE
		 SET payload = EXCLUDED.payload,
		     stored_at = EXCLUDED.stored_at,
		     expires_at = EXCLUDED.expires_at`,
		e.Key, e.Payload, e.StoredAt, e.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("upsert cache row: %w", err)
	}

	// Opportunistic reclamation; postgres has no row TTL of its own.
	if _, err := s.pool.Exec(ctx, `DELETE FROM external_cache WHERE expires_at < now()`); err != nil {
		s.log.Warn("cache_reclaim_error", zap.Error(err))
	}
	return nil
}
