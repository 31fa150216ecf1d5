// Package observer corroborates the local verdict with independent
// third-party "is it down" services.
package observer

import (
	"context"

	"github.com/statuswatch/statuswatch/internal/domain"
)

// Observer is one third-party opinion source. Observe never returns an
// error: an observer's own failure (connection refused, ambiguous page)
// degrades to a down/unknown/error result for that observer only.
type Observer interface {
	Name() string
	Observe(ctx context.Context, host string) domain.ObserverResult
}
