// Package newsletter implements the newsletter lifecycle: drafting, editing
// with AI categorization, deletion, listing and the follower feed.
package newsletter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsroom/internal/common/pagination"
	"newsroom/internal/domain/entity"
	"newsroom/internal/observability/metrics"
	"newsroom/internal/repository"
	"newsroom/internal/utils/text"
)

// Categorizer assigns a category to newsletter content.
type Categorizer interface {
	Categorize(ctx context.Context, content string) entity.Category
}

// CreateInput represents the input parameters for drafting a newsletter.
type CreateInput struct {
	Title   string
	Content string
}

// UpdateInput represents the input parameters for updating a newsletter.
// Fields with nil values will not be updated. A nil or empty Category
// triggers AI categorization of the resulting content.
type UpdateInput struct {
	Title        *string
	Subtitle     *string
	Content      *string
	Image        *string
	Category     *string
	Published    *bool
	ScheduledFor *time.Time
}

// FeedResult is one page of the follower feed.
type FeedResult struct {
	Data       []*entity.Newsletter
	Pagination pagination.Metadata
}

// Service provides newsletter use cases.
type Service struct {
	Repo        repository.NewsletterRepository
	Categorizer Categorizer
	// Now defaults to time.Now.
	Now func() time.Time
}

// Create stores a new unpublished draft authored by authorID.
func (s *Service) Create(ctx context.Context, authorID string, in CreateInput) (*entity.Newsletter, error) {
	now := s.now()
	n := &entity.Newsletter{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		Content:   text.SanitizeHTML(in.Content),
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create newsletter: %w", err)
	}

	metrics.RecordNewsletterCreated()
	slog.InfoContext(ctx, "newsletter created",
		slog.String("newsletter_id", n.ID),
		slog.String("author_id", authorID))
	return n, nil
}

// Update applies in to the newsletter id on behalf of actor.
func (s *Service) Update(ctx context.Context, id string, actor *entity.User, in UpdateInput) (*entity.Newsletter, error) {
	n, err := s.editable(ctx, id, actor, "update")
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		n.Title = strings.TrimSpace(*in.Title)
	}
	if in.Subtitle != nil {
		n.Subtitle = strings.TrimSpace(*in.Subtitle)
	}
	if in.Content != nil {
		n.Content = text.SanitizeHTML(*in.Content)
	}
	if in.Image != nil {
		image := strings.TrimSpace(*in.Image)
		if image != "" {
			if err := entity.ValidateImageURL(image); err != nil {
				return nil, err
			}
		}
		n.Image = image
	}
	if in.Published != nil {
		n.Published = *in.Published
	}
	if in.ScheduledFor != nil {
		n.ScheduledFor = in.ScheduledFor
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, in.Category, n.Content)
	if err != nil {
		return nil, err
	}
	n.Category = &category
	n.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("update newsletter: %w", err)
	}

	metrics.RecordNewsletterMutation("update")
	slog.InfoContext(ctx, "newsletter updated",
		slog.String("newsletter_id", n.ID),
		slog.String("actor_id", actor.ID),
		slog.String("category", category.String()))
	return n, nil
}

// Delete removes the newsletter id on behalf of actor.
func (s *Service) Delete(ctx context.Context, id string, actor *entity.User) error {
	if _, err := s.editable(ctx, id, actor, "delete"); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete newsletter: %w", err)
	}

	metrics.RecordNewsletterMutation("delete")
	slog.InfoContext(ctx, "newsletter deleted",
		slog.String("newsletter_id", id),
		slog.String("actor_id", actor.ID))
	return nil
}

// Get returns the newsletter id as seen by viewer (nil for anonymous).
// Drafts the viewer may not see are reported as not found.
func (s *Service) Get(ctx context.Context, id string, viewer *entity.User) (*entity.Newsletter, error) {
	n, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get newsletter: %w", err)
	}
	if n == nil || !n.VisibleTo(viewer) {
		return nil, &entity.NotFoundError{Resource: "newsletter", Message: "Newsletter not found"}
	}
	return n, nil
}

// List returns newsletters newest first, optionally by a single author.
// Drafts are only included when viewer is that author or an admin.
func (s *Service) List(ctx context.Context, viewer *entity.User, authorID string) ([]*entity.Newsletter, error) {
	filter := repository.NewsletterFilter{AuthorID: authorID, PublishedOnly: true}
	switch {
	case viewer.IsAdmin():
		filter.PublishedOnly = false
	case viewer != nil && authorID != "" && authorID == viewer.ID:
		filter.PublishedOnly = false
	}

	list, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list newsletters: %w", err)
	}
	return list, nil
}

// Feed returns published newsletters written by the authors followerID follows.
func (s *Service) Feed(ctx context.Context, followerID string, params pagination.Params) (*FeedResult, error) {
	offset := pagination.CalculateOffset(params.Page, params.Limit)

	total, err := s.Repo.CountFeed(ctx, followerID)
	if err != nil {
		return nil, fmt.Errorf("count feed: %w", err)
	}

	list, err := s.Repo.ListFeed(ctx, followerID, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}

	return &FeedResult{
		Data: list,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: pagination.CalculateTotalPages(total, params.Limit),
		},
	}, nil
}

func (s *Service) editable(ctx context.Context, id string, actor *entity.User, verb string) (*entity.Newsletter, error) {
	n, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get newsletter: %w", err)
	}
	if n == nil {
		return nil, &entity.NotFoundError{Resource: "newsletter", Message: "Newsletter not found"}
	}
	if !n.EditableBy(actor) {
		return nil, &entity.ForbiddenError{Message: fmt.Sprintf("You are not authorized to %s this newsletter", verb)}
	}
	return n, nil
}

func (s *Service) resolveCategory(ctx context.Context, requested *string, content string) (entity.Category, error) {
	if requested != nil && strings.TrimSpace(*requested) != "" {
		c, ok := entity.ParseCategory(*requested)
		if !ok {
			return "", &entity.ValidationError{Field: "category", Message: "Invalid category"}
		}
		return c, nil
	}
	if s.Categorizer == nil {
		return entity.CategoryOther, nil
	}
	return s.Categorizer.Categorize(ctx, content), nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
