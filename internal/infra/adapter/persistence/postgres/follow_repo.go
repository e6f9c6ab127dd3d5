package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

type FollowRepo struct{ db *sql.DB }

func NewFollowRepo(db *sql.DB) repository.FollowRepository {
	return &FollowRepo{db: db}
}

func (repo *FollowRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	defer observe("follows.Exists")()
	const query = `
SELECT EXISTS(
    SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2
)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, followerID, followingID).Scan(&exists); err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	return exists, nil
}

// Create inserts the edge. A concurrent duplicate is reported as entity.ErrConflict.
func (repo *FollowRepo) Create(ctx context.Context, f *entity.Follow) error {
	defer observe("follows.Create")()
	const query = `
INSERT INTO follows (follower_id, following_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (follower_id, following_id) DO NOTHING`
	res, err := repo.db.ExecContext(ctx, query, f.FollowerID, f.FollowingID, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Create: %w", entity.ErrConflict)
	}
	return nil
}

func (repo *FollowRepo) Delete(ctx context.Context, followerID, followingID string) (bool, error) {
	defer observe("follows.Delete")()
	const query = `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`
	res, err := repo.db.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	return n > 0, nil
}

func (repo *FollowRepo) count(ctx context.Context, op, column, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM follows WHERE ` + column + ` = $1`
	var n int
	if err := repo.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (repo *FollowRepo) CountFollowers(ctx context.Context, userID string) (int, error) {
	defer observe("follows.CountFollowers")()
	return repo.count(ctx, "CountFollowers", "following_id", userID)
}

func (repo *FollowRepo) CountFollowing(ctx context.Context, userID string) (int, error) {
	defer observe("follows.CountFollowing")()
	return repo.count(ctx, "CountFollowing", "follower_id", userID)
}

func (repo *FollowRepo) ListFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	defer observe("follows.ListFollowingIDs")()
	const query = `SELECT following_id FROM follows WHERE follower_id = $1`
	rows, err := repo.db.QueryContext(ctx, query, followerID)
	if err != nil {
		return nil, fmt.Errorf("ListFollowingIDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := make([]string, 0, 20)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ListFollowingIDs: Scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
