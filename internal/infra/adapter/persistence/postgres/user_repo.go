package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

const userColumns = `id, name, email, password_hash, image, bio, custom_link, role, created_at`

func scanUser(s rowScanner) (*entity.User, error) {
	var (
		u                      entity.User
		image, bio, customLink sql.NullString
		role                   string
	)
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&image, &bio, &customLink, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Image = stringOf(image)
	u.Bio = stringOf(bio)
	u.CustomLink = stringOf(customLink)
	u.Role = entity.ParseRole(role)
	return &u, nil
}

func (repo *UserRepo) getOne(ctx context.Context, op, where string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` LIMIT 1`
	u, err := scanUser(repo.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func (repo *UserRepo) Get(ctx context.Context, id string) (*entity.User, error) {
	defer observe("users.Get")()
	return repo.getOne(ctx, "Get", "id = $1", id)
}

func (repo *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	defer observe("users.GetByEmail")()
	return repo.getOne(ctx, "GetByEmail", "email = $1", email)
}

func (repo *UserRepo) GetByCustomLink(ctx context.Context, link string) (*entity.User, error) {
	defer observe("users.GetByCustomLink")()
	return repo.getOne(ctx, "GetByCustomLink", "custom_link = $1", link)
}

func (repo *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	defer observe("users.List")()
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*entity.User, 0, 50)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (repo *UserRepo) Create(ctx context.Context, u *entity.User) error {
	defer observe("users.Create")()
	const query = `
INSERT INTO users (id, name, email, password_hash, image, bio, custom_link, role, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := repo.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash,
		nullable(u.Image), nullable(u.Bio), nullable(u.CustomLink),
		string(u.Role), u.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("Create: %w", entity.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) UpdateProfile(ctx context.Context, u *entity.User) error {
	defer observe("users.UpdateProfile")()
	const query = `
UPDATE users SET
       name        = $1,
       bio         = $2,
       custom_link = $3
WHERE id = $4`
	res, err := repo.db.ExecContext(ctx, query, u.Name, nullable(u.Bio), nullable(u.CustomLink), u.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("UpdateProfile: %w", entity.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("UpdateProfile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("UpdateProfile: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *UserRepo) UpdateImage(ctx context.Context, id, image string) error {
	defer observe("users.UpdateImage")()
	const query = `UPDATE users SET image = $1 WHERE id = $2`
	res, err := repo.db.ExecContext(ctx, query, image, id)
	if err != nil {
		return fmt.Errorf("UpdateImage: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("UpdateImage: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *UserRepo) ListDiscover(ctx context.Context, excludeID string, offset, limit int) ([]repository.UserWithCounts, error) {
	defer observe("users.ListDiscover")()
	const query = `
SELECT u.id, u.name, u.email, u.password_hash, u.image, u.bio, u.custom_link, u.role, u.created_at,
       (SELECT COUNT(*) FROM follows f WHERE f.following_id = u.id) AS follower_count,
       (SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id)  AS following_count,
       (SELECT COUNT(*) FROM newsletters n WHERE n.author_id = u.id AND n.published) AS newsletter_count
FROM users u
WHERE u.id <> $1
ORDER BY follower_count DESC, u.created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := repo.db.QueryContext(ctx, query, excludeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListDiscover: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.UserWithCounts, 0, limit)
	for rows.Next() {
		var (
			u                      entity.User
			image, bio, customLink sql.NullString
			role                   string
			c                      repository.UserWithCounts
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
			&image, &bio, &customLink, &role, &u.CreatedAt,
			&c.FollowerCount, &c.FollowingCount, &c.NewsletterCount); err != nil {
			return nil, fmt.Errorf("ListDiscover: Scan: %w", err)
		}
		u.Image = stringOf(image)
		u.Bio = stringOf(bio)
		u.CustomLink = stringOf(customLink)
		u.Role = entity.ParseRole(role)
		c.User = &u
		result = append(result, c)
	}
	return result, rows.Err()
}

func (repo *UserRepo) CountDiscover(ctx context.Context, excludeID string) (int64, error) {
	defer observe("users.CountDiscover")()
	const query = `SELECT COUNT(*) FROM users WHERE id <> $1`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, excludeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountDiscover: %w", err)
	}
	return count, nil
}
