package observer

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/statuswatch/statuswatch/internal/cache"
	"github.com/statuswatch/statuswatch/internal/domain"
)

// Aggregator fans out to all configured observers, bounded by a wall-clock
// budget, and caches the combined mapping. It never fails its caller: total
// failure is an empty map.
type Aggregator struct {
	Logger    *zap.Logger
	Cache     *cache.Gateway // nil disables caching
	Observers []Observer
	Timeout   time.Duration // per-observer
	Budget    time.Duration // whole fan-out
}

func NewAggregator(log *zap.Logger, gw *cache.Gateway, obs ...Observer) *Aggregator {
	return &Aggregator{
		Logger:    log,
		Cache:     gw,
		Observers: obs,
		Timeout:   3 * time.Second,
		Budget:    5 * time.Second,
	}
}

// Check returns observer name -> result for the target URL. A fresh cache
// entry is returned verbatim without touching the network. Observers that
// complete with a failure appear as error entries; observers still running
// when the budget expires are absent.
func (a *Aggregator) Check(ctx context.Context, target string) map[string]domain.ObserverResult {
	key := cacheKey(target)
	if a.Cache != nil {
		if payload, ok := a.Cache.Get(ctx, key); ok {
			var cached map[string]domain.ObserverResult
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached
			}
			a.Logger.Warn("external_cache_decode_error", zap.String("url", target))
		}
	}

	host := hostOf(target)

	type outcome struct {
		name string
		res  domain.ObserverResult
	}
	ch := make(chan outcome, len(a.Observers))
	for _, o := range a.Observers {
		go func(o Observer) {
			octx, cancel := context.WithTimeout(ctx, a.Timeout)
			defer cancel()
			ch <- outcome{name: o.Name(), res: o.Observe(octx, host)}
		}(o)
	}

	deadline := time.NewTimer(a.Budget)
	defer deadline.Stop()

	out := make(map[string]domain.ObserverResult, len(a.Observers))
collect:
	for range a.Observers {
		select {
		case oc := <-ch:
			out[oc.name] = oc.res
		case <-deadline.C:
			// abandon whatever is still running; its result is discarded
			break collect
		case <-ctx.Done():
			break collect
		}
	}

	if len(out) > 0 && a.Cache != nil {
		if payload, err := json.Marshal(out); err == nil {
			a.Cache.Put(ctx, key, payload)
		}
	}
	return out
}

// cacheKey scopes the entry to the URL and the result type, so other cached
// shapes for the same URL cannot collide with it.
func cacheKey(target string) string {
	return target + "#external"
}

func hostOf(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return target
	}
	return u.Host
}
