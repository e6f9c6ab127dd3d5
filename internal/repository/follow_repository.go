package repository

import (
	"context"

	"newsroom/internal/domain/entity"
)

// FollowRepository persists the directed follow graph.
type FollowRepository interface {
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	// Create inserts an edge. Returns entity.ErrConflict when the edge already exists.
	Create(ctx context.Context, f *entity.Follow) error
	// Delete removes an edge and reports whether one existed.
	Delete(ctx context.Context, followerID, followingID string) (bool, error)
	CountFollowers(ctx context.Context, userID string) (int, error)
	CountFollowing(ctx context.Context, userID string) (int, error)
	ListFollowingIDs(ctx context.Context, followerID string) ([]string, error)
}
