package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

type NewsletterRepo struct{ db *sql.DB }

func NewNewsletterRepo(db *sql.DB) repository.NewsletterRepository {
	return &NewsletterRepo{db: db}
}

// newsletterSelect reads a newsletter together with its author's public fields.
const newsletterSelect = `
SELECT n.id, n.title, n.subtitle, n.content, n.image, n.category, n.published,
       n.scheduled_for, n.author_id, n.created_at, n.updated_at,
       u.name, u.image
FROM newsletters n
LEFT JOIN users u ON u.id = n.author_id`

// newsletterRow holds the scan targets for one newsletterSelect row.
type newsletterRow struct {
	n                         entity.Newsletter
	subtitle, image, category sql.NullString
	authorName, authorImage   sql.NullString
	scheduledFor              sql.NullTime
}

func (r *newsletterRow) dest() []any {
	return []any{&r.n.ID, &r.n.Title, &r.subtitle, &r.n.Content, &r.image, &r.category, &r.n.Published,
		&r.scheduledFor, &r.n.AuthorID, &r.n.CreatedAt, &r.n.UpdatedAt,
		&r.authorName, &r.authorImage}
}

func (r *newsletterRow) build() *entity.Newsletter {
	n := r.n
	n.Subtitle = stringOf(r.subtitle)
	n.Image = stringOf(r.image)
	if r.category.Valid && r.category.String != "" {
		c := entity.Category(r.category.String)
		n.Category = &c
	}
	if r.scheduledFor.Valid {
		t := r.scheduledFor.Time
		n.ScheduledFor = &t
	}
	if r.authorName.Valid {
		n.Author = &entity.User{ID: n.AuthorID, Name: r.authorName.String, Image: stringOf(r.authorImage)}
	}
	return &n
}

func scanNewsletter(s rowScanner) (*entity.Newsletter, error) {
	var r newsletterRow
	if err := s.Scan(r.dest()...); err != nil {
		return nil, err
	}
	return r.build(), nil
}

func collectNewsletters(rows *sql.Rows, capacity int) ([]*entity.Newsletter, error) {
	defer func() { _ = rows.Close() }()
	out := make([]*entity.Newsletter, 0, capacity)
	for rows.Next() {
		n, err := scanNewsletter(rows)
		if err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func categoryParam(c *entity.Category) any {
	if c == nil || *c == "" {
		return nil
	}
	return string(*c)
}

func (repo *NewsletterRepo) Get(ctx context.Context, id string) (*entity.Newsletter, error) {
	defer observe("newsletters.Get")()
	query := newsletterSelect + `
WHERE n.id = $1
LIMIT 1`
	n, err := scanNewsletter(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return n, nil
}

func (repo *NewsletterRepo) List(ctx context.Context, filter repository.NewsletterFilter) ([]*entity.Newsletter, error) {
	defer observe("newsletters.List")()
	var (
		conds []string
		args  []any
	)
	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		conds = append(conds, fmt.Sprintf("n.author_id = $%d", len(args)))
	}
	if filter.PublishedOnly {
		conds = append(conds, "n.published = TRUE")
	}

	var qb strings.Builder
	qb.WriteString(newsletterSelect)
	if len(conds) > 0 {
		qb.WriteString("\nWHERE ")
		qb.WriteString(strings.Join(conds, " AND "))
	}
	qb.WriteString("\nORDER BY n.created_at DESC")

	rows, err := repo.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	out, err := collectNewsletters(rows, 50)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return out, nil
}

func (repo *NewsletterRepo) Create(ctx context.Context, n *entity.Newsletter) error {
	defer observe("newsletters.Create")()
	const query = `
INSERT INTO newsletters (id, title, subtitle, content, image, category, published,
                         scheduled_for, author_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := repo.db.ExecContext(ctx, query,
		n.ID, n.Title, nullable(n.Subtitle), n.Content, nullable(n.Image),
		categoryParam(n.Category), n.Published, n.ScheduledFor,
		n.AuthorID, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Update writes every mutable column. author_id and created_at are never changed.
func (repo *NewsletterRepo) Update(ctx context.Context, n *entity.Newsletter) error {
	defer observe("newsletters.Update")()
	const query = `
UPDATE newsletters SET
       title         = $1,
       subtitle      = $2,
       content       = $3,
       image         = $4,
       category      = $5,
       published     = $6,
       scheduled_for = $7,
       updated_at    = $8
WHERE id = $9`
	res, err := repo.db.ExecContext(ctx, query,
		n.Title, nullable(n.Subtitle), n.Content, nullable(n.Image),
		categoryParam(n.Category), n.Published, n.ScheduledFor, n.UpdatedAt, n.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *NewsletterRepo) Delete(ctx context.Context, id string) error {
	defer observe("newsletters.Delete")()
	const query = `DELETE FROM newsletters WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *NewsletterRepo) ListFeed(ctx context.Context, followerID string, offset, limit int) ([]*entity.Newsletter, error) {
	defer observe("newsletters.ListFeed")()
	query := newsletterSelect + `
INNER JOIN follows f ON f.following_id = n.author_id
WHERE f.follower_id = $1 AND n.published = TRUE
ORDER BY n.created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := repo.db.QueryContext(ctx, query, followerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListFeed: %w", err)
	}
	out, err := collectNewsletters(rows, limit)
	if err != nil {
		return nil, fmt.Errorf("ListFeed: %w", err)
	}
	return out, nil
}

func (repo *NewsletterRepo) CountFeed(ctx context.Context, followerID string) (int64, error) {
	defer observe("newsletters.CountFeed")()
	const query = `
SELECT COUNT(*)
FROM newsletters n
INNER JOIN follows f ON f.following_id = n.author_id
WHERE f.follower_id = $1 AND n.published = TRUE`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, followerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountFeed: %w", err)
	}
	return count, nil
}

func (repo *NewsletterRepo) ListPublishedSince(ctx context.Context, since time.Time) ([]*entity.Newsletter, error) {
	defer observe("newsletters.ListPublishedSince")()
	query := newsletterSelect + `
WHERE n.published = TRUE AND n.created_at >= $1
ORDER BY n.created_at ASC`
	rows, err := repo.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("ListPublishedSince: %w", err)
	}
	out, err := collectNewsletters(rows, 50)
	if err != nil {
		return nil, fmt.Errorf("ListPublishedSince: %w", err)
	}
	return out, nil
}
