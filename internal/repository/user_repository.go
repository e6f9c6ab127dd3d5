package repository

import (
	"context"

	"newsroom/internal/domain/entity"
)

// UserWithCounts is a user together with follow-graph and authorship counters.
type UserWithCounts struct {
	User            *entity.User
	FollowerCount   int
	FollowingCount  int
	NewsletterCount int
}

// UserRepository persists user accounts.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByCustomLink(ctx context.Context, link string) (*entity.User, error)
	// List returns every user, newest first.
	List(ctx context.Context) ([]*entity.User, error)
	// Create inserts a user. Returns entity.ErrConflict when the email or custom link is taken.
	Create(ctx context.Context, user *entity.User) error
	// UpdateProfile writes name, bio and custom link.
	UpdateProfile(ctx context.Context, user *entity.User) error
	UpdateImage(ctx context.Context, id, image string) error
	// ListDiscover returns users other than excludeID ordered by follower count.
	ListDiscover(ctx context.Context, excludeID string, offset, limit int) ([]UserWithCounts, error)
	CountDiscover(ctx context.Context, excludeID string) (int64, error)
}
