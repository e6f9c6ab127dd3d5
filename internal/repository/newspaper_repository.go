package repository

import (
	"context"
	"time"

	"newsroom/internal/domain/entity"
)

// NewspaperRepository persists daily newspapers and their items.
type NewspaperRepository interface {
	// ExistsSince reports whether a newspaper dated on or after day exists.
	ExistsSince(ctx context.Context, day time.Time) (bool, error)
	// CreateWithItems atomically inserts the newspaper and its items.
	// It returns false without error when a newspaper for the same day already exists.
	CreateWithItems(ctx context.Context, paper *entity.DailyNewspaper) (bool, error)
	// GetSince returns the first newspaper dated on or after day, items included.
	// Returns (nil, nil) when there is none.
	GetSince(ctx context.Context, day time.Time) (*entity.DailyNewspaper, error)
}
