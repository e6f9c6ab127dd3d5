// Package follow implements the follow graph use cases.
package follow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newsroom/internal/domain/entity"
	"newsroom/internal/observability/metrics"
	"newsroom/internal/repository"
)

// Service toggles directed follow edges between users.
type Service struct {
	Users   repository.UserRepository
	Follows repository.FollowRepository
	// Now defaults to time.Now.
	Now func() time.Time
}

// Toggle applies action to the edge actorID -> targetID.
//
// Self-follow and unknown actions are rejected before any store access.
// Following twice yields ErrConflict; unfollowing a missing edge yields ErrNotFound.
func (s *Service) Toggle(ctx context.Context, actorID, targetID string, action entity.FollowAction) error {
	if actorID == targetID {
		return &entity.ValidationError{Field: "followingId", Message: "You cannot follow yourself"}
	}
	if action != entity.ActionFollow && action != entity.ActionUnfollow {
		return &entity.ValidationError{Field: "action", Message: "Invalid action"}
	}

	target, err := s.Users.Get(ctx, targetID)
	if err != nil {
		return fmt.Errorf("get target user: %w", err)
	}
	if target == nil {
		return &entity.NotFoundError{Resource: "user"}
	}

	switch action {
	case entity.ActionFollow:
		err = s.follow(ctx, actorID, targetID)
	case entity.ActionUnfollow:
		err = s.unfollow(ctx, actorID, targetID)
	}
	if err != nil {
		return err
	}

	metrics.RecordFollowToggled(string(action))
	slog.InfoContext(ctx, "follow toggled",
		slog.String("follower_id", actorID),
		slog.String("following_id", targetID),
		slog.String("action", string(action)))
	return nil
}

func (s *Service) follow(ctx context.Context, actorID, targetID string) error {
	exists, err := s.Follows.Exists(ctx, actorID, targetID)
	if err != nil {
		return fmt.Errorf("check follow: %w", err)
	}
	if exists {
		return &entity.ConflictError{Message: "Already following this user"}
	}

	if err := s.Follows.Create(ctx, &entity.Follow{
		FollowerID:  actorID,
		FollowingID: targetID,
		CreatedAt:   s.now(),
	}); err != nil {
		// 並行リクエストで先に作成された場合
		if errors.Is(err, entity.ErrConflict) {
			return &entity.ConflictError{Message: "Already following this user"}
		}
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

func (s *Service) unfollow(ctx context.Context, actorID, targetID string) error {
	deleted, err := s.Follows.Delete(ctx, actorID, targetID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	if !deleted {
		return &entity.NotFoundError{Resource: "follow", Message: "Not following this user"}
	}
	return nil
}

// IsFollowing reports whether followerID follows followingID.
// An empty followerID (anonymous viewer) is never following.
func (s *Service) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	if followerID == "" || followerID == followingID {
		return false, nil
	}
	ok, err := s.Follows.Exists(ctx, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return ok, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
