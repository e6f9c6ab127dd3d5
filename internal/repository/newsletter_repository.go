package repository

import (
	"context"
	"time"

	"newsroom/internal/domain/entity"
)

// NewsletterFilter narrows a newsletter listing.
type NewsletterFilter struct {
	AuthorID      string // Optional: only newsletters by this author
	PublishedOnly bool   // Exclude drafts
}

// NewsletterRepository persists newsletters. Read methods populate Newsletter.Author.
type NewsletterRepository interface {
	// Get returns (nil, nil) when the newsletter does not exist.
	Get(ctx context.Context, id string) (*entity.Newsletter, error)
	// List returns newsletters matching filter ordered by created_at DESC.
	List(ctx context.Context, filter NewsletterFilter) ([]*entity.Newsletter, error)
	Create(ctx context.Context, n *entity.Newsletter) error
	Update(ctx context.Context, n *entity.Newsletter) error
	// Delete removes the newsletter. Returns entity.ErrNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
	// ListFeed returns published newsletters by authors followerID follows, newest first.
	ListFeed(ctx context.Context, followerID string, offset, limit int) ([]*entity.Newsletter, error)
	CountFeed(ctx context.Context, followerID string) (int64, error)
	// ListPublishedSince returns published newsletters created at or after since.
	ListPublishedSince(ctx context.Context, since time.Time) ([]*entity.Newsletter, error)
}
