package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Entry is one cached payload. StoredAt drives read freshness; ExpiresAt is
// the hint for the store's own reclamation and is always later than the
// freshness window.
type Entry struct {
	Key       string    `json:"key"`
	Payload   []byte    `json:"payload"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store is the key-value port. Get returns nil, nil when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, e Entry) error
}

// Gateway enforces the freshness window on reads and stamps lifetimes on
// writes. Caching is best-effort: storage errors degrade to a miss on read
// and are logged and swallowed on write.
type Gateway struct {
	store     Store
	log       *zap.Logger
	freshness time.Duration
	lifetime  time.Duration
	now       func() time.Time
}

func NewGateway(store Store, log *zap.Logger, freshness, lifetime time.Duration) *Gateway {
	if freshness <= 0 {
		freshness = 5 * time.Minute
	}
	if lifetime <= 0 {
		lifetime = 10 * time.Minute
	}
	return &Gateway{
		store:     store,
		log:       log,
		freshness: freshness,
		lifetime:  lifetime,
		now:       time.Now,
	}
}

// Get returns the cached payload if it is still within the freshness window.
// A stale row is a miss even if the store has not reclaimed it yet.
func (g *Gateway) Get(ctx context.Context, key string) ([]byte, bool) {
	e, err := g.store.Get(ctx, key)
	if err != nil {
		g.log.Warn("cache_get_error", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if e == nil {
		return nil, false
	}
	if g.now().Sub(e.StoredAt) >= g.freshness {
		return nil, false
	}
	return e.Payload, true
}

// Put stores the payload with the current timestamp and the reclamation
// expiry. Never returns an error to the caller.
func (g *Gateway) Put(ctx context.Context, key string, payload []byte) {
	now := g.now()
	e := Entry{
		Key:       key,
		Payload:   payload,
		StoredAt:  now,
		ExpiresAt: now.Add(g.lifetime),
	}
	if err := g.store.Put(ctx, e); err != nil {
		g.log.Warn("cache_put_error", zap.String("key", key), zap.Error(err))
	}
}
