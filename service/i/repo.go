package i

import (
	"context"
	"errors"

	dmn "github.com/beka-birhanu/patrol-api/domain"
)

// ErrNotFound is returned by repositories when no record matches.
var ErrNotFound = errors.New("record not found")

// MapRepo defines the interface for saved map persistence.
type MapRepo interface {
	// Save inserts or replaces a map.
	Save(ctx context.Context, m *dmn.Map) error

	// ByID retrieves a map by its ID.
	// Returns ErrNotFound if no map has that ID.
	ByID(ctx context.Context, id string) (*dmn.Map, error)

	// All returns every saved map, newest first.
	All(ctx context.Context) ([]*dmn.Map, error)
}

// ResultRepo defines the interface for patrol result persistence.
type ResultRepo interface {
	Save(ctx context.Context, r *dmn.Result) error

	// ByID retrieves a result by its ID.
	// Returns ErrNotFound if no result has that ID.
	ByID(ctx context.Context, id string) (*dmn.Result, error)

	// ByMap returns every result recorded for mapID.
	ByMap(ctx context.Context, mapID string) ([]*dmn.Result, error)
}
