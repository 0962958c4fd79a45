package i

import (
	"context"

	dmn "github.com/beka-birhanu/patrol-api/domain"
)

// ResultCache stores evaluated outcomes by request fingerprint.
type ResultCache interface {
	// Get reports false when key is not cached.
	Get(ctx context.Context, key string) (*dmn.Outcome, bool, error)
	Set(ctx context.Context, key string, outcome *dmn.Outcome) error

	// Lock blocks until the lock on key is held and returns its release func.
	Lock(ctx context.Context, key string) (func(), error)
}

// ResultRanking keeps result IDs ordered by score per map.
type ResultRanking interface {
	Add(ctx context.Context, mapID string, score float64, resultID string) error

	// Top returns up to n result IDs, highest score first.
	Top(ctx context.Context, mapID string, n int64) ([]string, error)
}

// EventPublisher fans domain events out to other services.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte) error
}
