// Package user implements account administration, profile editing and the
// people-facing reads: discovery and public profiles.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsroom/internal/common/pagination"
	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

// ErrCustomLinkTaken is returned when another account already owns the custom link.
var ErrCustomLinkTaken = &entity.ConflictError{Message: "Custom link is already taken"}

// PasswordHasher validates and hashes new passwords.
type PasswordHasher interface {
	Validate(password string) error
	Hash(password string) (string, error)
}

// CreateInput is an admin request to create an account.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	Name       string
	Bio        string
	CustomLink string
}

// DiscoverEntry is one row of the discover listing.
type DiscoverEntry struct {
	repository.UserWithCounts
	IsFollowing bool
}

// DiscoverResult is one page of the discover listing.
type DiscoverResult struct {
	Data       []DiscoverEntry
	Pagination pagination.Metadata
}

// Profile is the public view of a user.
type Profile struct {
	User           *entity.User
	FollowerCount  int
	FollowingCount int
	Newsletters    []*entity.Newsletter
	IsFollowing    bool
}

// Service provides user use cases.
type Service struct {
	Users       repository.UserRepository
	Follows     repository.FollowRepository
	Newsletters repository.NewsletterRepository
	Passwords   PasswordHasher
	// Now defaults to time.Now.
	Now func() time.Time
}

// List returns every account, newest first.
func (s *Service) List(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create registers a new account on behalf of an admin.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	if err := entity.ValidateName(name); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, &entity.ValidationError{Field: "email", Message: "Invalid email address"}
	}
	if err := s.Passwords.Validate(in.Password); err != nil {
		return nil, &entity.ValidationError{Field: "password", Message: err.Error()}
	}

	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if existing != nil {
		return nil, &entity.ConflictError{Message: "User already exists"}
	}

	hash, err := s.Passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.ParseRole(in.Role),
		CreatedAt:    s.now(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, &entity.ConflictError{Message: "User already exists"}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "user created",
		slog.String("user_id", u.ID),
		slog.String("role", string(u.Role)))
	return u, nil
}

// UpdateProfile writes name, bio and custom link for userID.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	if err := entity.ValidateName(name); err != nil {
		return nil, err
	}
	link := strings.TrimSpace(in.CustomLink)
	if err := entity.ValidateCustomLink(link); err != nil {
		return nil, err
	}

	if link != "" {
		owner, err := s.Users.GetByCustomLink(ctx, link)
		if err != nil {
			return nil, fmt.Errorf("get user by custom link: %w", err)
		}
		if owner != nil && owner.ID != userID {
			return nil, ErrCustomLinkTaken
		}
	}

	u, err := s.mustGet(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Name = name
	u.Bio = strings.TrimSpace(in.Bio)
	u.CustomLink = link

	if err := s.Users.UpdateProfile(ctx, u); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, ErrCustomLinkTaken
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

// UpdateImage sets the profile image URL of userID.
func (s *Service) UpdateImage(ctx context.Context, userID, imageURL string) error {
	imageURL = strings.TrimSpace(imageURL)
	if err := entity.ValidateImageURL(imageURL); err != nil {
		return err
	}
	if err := s.Users.UpdateImage(ctx, userID, imageURL); err != nil {
		return fmt.Errorf("update image: %w", err)
	}
	return nil
}

// Discover lists users other than viewerID, most followed first.
func (s *Service) Discover(ctx context.Context, viewerID string, params pagination.Params) (*DiscoverResult, error) {
	total, err := s.Users.CountDiscover(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("count discover: %w", err)
	}

	rows, err := s.Users.ListDiscover(ctx, viewerID, pagination.CalculateOffset(params.Page, params.Limit), params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list discover: %w", err)
	}

	followingIDs, err := s.Follows.ListFollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	following := make(map[string]struct{}, len(followingIDs))
	for _, id := range followingIDs {
		following[id] = struct{}{}
	}

	entries := make([]DiscoverEntry, len(rows))
	for i, row := range rows {
		_, ok := following[row.User.ID]
		entries[i] = DiscoverEntry{UserWithCounts: row, IsFollowing: ok}
	}

	return &DiscoverResult{
		Data: entries,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: pagination.CalculateTotalPages(total, params.Limit),
		},
	}, nil
}

// Profile returns the public profile for idOrLink, which may be a user ID
// or a custom link. viewer may be nil.
func (s *Service) Profile(ctx context.Context, idOrLink string, viewer *entity.User) (*Profile, error) {
	u, err := s.Users.Get(ctx, idOrLink)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		if u, err = s.Users.GetByCustomLink(ctx, idOrLink); err != nil {
			return nil, fmt.Errorf("get user by custom link: %w", err)
		}
	}
	if u == nil {
		return nil, &entity.NotFoundError{Resource: "user", Message: "User not found"}
	}

	p := &Profile{User: u}
	if p.FollowerCount, err = s.Follows.CountFollowers(ctx, u.ID); err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	if p.FollowingCount, err = s.Follows.CountFollowing(ctx, u.ID); err != nil {
		return nil, fmt.Errorf("count following: %w", err)
	}
	if p.Newsletters, err = s.Newsletters.List(ctx, repository.NewsletterFilter{AuthorID: u.ID, PublishedOnly: true}); err != nil {
		return nil, fmt.Errorf("list newsletters: %w", err)
	}
	if viewer != nil && viewer.ID != u.ID {
		if p.IsFollowing, err = s.Follows.Exists(ctx, viewer.ID, u.ID); err != nil {
			return nil, fmt.Errorf("check follow: %w", err)
		}
	}
	return p, nil
}

func (s *Service) mustGet(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, &entity.NotFoundError{Resource: "user", Message: "User not found"}
	}
	return u, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
