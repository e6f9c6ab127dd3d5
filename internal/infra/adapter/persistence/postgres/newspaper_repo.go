package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

// dateLayout is how calendar days are passed to DATE columns.
const dateLayout = "2006-01-02"

type NewspaperRepo struct{ db *sql.DB }

func NewNewspaperRepo(db *sql.DB) repository.NewspaperRepository {
	return &NewspaperRepo{db: db}
}

func (repo *NewspaperRepo) ExistsSince(ctx context.Context, day time.Time) (bool, error) {
	defer observe("newspapers.ExistsSince")()
	const query = `SELECT EXISTS(SELECT 1 FROM daily_newspapers WHERE date >= $1)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, day.Format(dateLayout)).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsSince: %w", err)
	}
	return exists, nil
}

// CreateWithItems inserts the newspaper row guarded by the UNIQUE date column,
// then its items, in a single transaction.
func (repo *NewspaperRepo) CreateWithItems(ctx context.Context, paper *entity.DailyNewspaper) (created bool, err error) {
	defer observe("newspapers.CreateWithItems")()
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("CreateWithItems: begin: %w", err)
	}
	defer func() {
		if err != nil || !created {
			_ = tx.Rollback()
		}
	}()

	const insertPaper = `
INSERT INTO daily_newspapers (id, date, title, summary, image, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (date) DO NOTHING
RETURNING id`
	var id string
	err = tx.QueryRowContext(ctx, insertPaper,
		paper.ID, paper.Date.Format(dateLayout), paper.Title, paper.Summary,
		nullable(paper.Image), paper.CreatedAt,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("CreateWithItems: insert newspaper: %w", err)
	}

	const insertItem = `
INSERT INTO daily_newspaper_items (id, newspaper_id, category, highlight, summary, newsletter_id)
VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range paper.Items {
		item.NewspaperID = id
		if _, err = tx.ExecContext(ctx, insertItem,
			item.ID, id, string(item.Category), item.Highlight, item.Summary, nullable(item.NewsletterID),
		); err != nil {
			return false, fmt.Errorf("CreateWithItems: insert item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("CreateWithItems: commit: %w", err)
	}
	return true, nil
}

func (repo *NewspaperRepo) GetSince(ctx context.Context, day time.Time) (*entity.DailyNewspaper, error) {
	defer observe("newspapers.GetSince")()
	const paperQuery = `
SELECT id, date, title, summary, image, created_at
FROM daily_newspapers
WHERE date >= $1
ORDER BY date ASC
LIMIT 1`
	var (
		paper entity.DailyNewspaper
		image sql.NullString
	)
	err := repo.db.QueryRowContext(ctx, paperQuery, day.Format(dateLayout)).
		Scan(&paper.ID, &paper.Date, &paper.Title, &paper.Summary, &image, &paper.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetSince: %w", err)
	}
	paper.Image = stringOf(image)

	const itemQuery = `
SELECT i.id, i.category, i.highlight, i.summary, i.newsletter_id,
       n.id, n.title, n.subtitle, n.content, n.image, n.category, n.published,
       n.scheduled_for, n.author_id, n.created_at, n.updated_at,
       u.name, u.image
FROM daily_newspaper_items i
LEFT JOIN newsletters n ON n.id = i.newsletter_id
LEFT JOIN users u ON u.id = n.author_id
WHERE i.newspaper_id = $1
ORDER BY i.highlight DESC, i.category ASC`
	rows, err := repo.db.QueryContext(ctx, itemQuery, paper.ID)
	if err != nil {
		return nil, fmt.Errorf("GetSince: items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			item         entity.DailyNewspaperItem
			category     string
			newsletterID sql.NullString
			row          itemNewsletterRow
		)
		dest := append([]any{&item.ID, &category, &item.Highlight, &item.Summary, &newsletterID}, row.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("GetSince: items: Scan: %w", err)
		}
		item.Category = entity.Category(category)
		item.NewspaperID = paper.ID
		item.NewsletterID = stringOf(newsletterID)
		item.Newsletter = row.build()
		paper.Items = append(paper.Items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetSince: items: %w", err)
	}
	return &paper, nil
}

// itemNewsletterRow is the LEFT JOINed newsletter of an item. Every column is
// NULL once the newsletter has been deleted.
type itemNewsletterRow struct {
	id, title, content, authorID sql.NullString
	published                    sql.NullBool
	createdAt, updatedAt         sql.NullTime
	row                          newsletterRow
}

func (r *itemNewsletterRow) dest() []any {
	return []any{&r.id, &r.title, &r.row.subtitle, &r.content, &r.row.image, &r.row.category, &r.published,
		&r.row.scheduledFor, &r.authorID, &r.createdAt, &r.updatedAt,
		&r.row.authorName, &r.row.authorImage}
}

func (r *itemNewsletterRow) build() *entity.Newsletter {
	if !r.id.Valid {
		return nil
	}
	r.row.n = entity.Newsletter{
		ID:        r.id.String,
		Title:     r.title.String,
		Content:   r.content.String,
		Published: r.published.Bool,
		AuthorID:  r.authorID.String,
		CreatedAt: r.createdAt.Time,
		UpdatedAt: r.updatedAt.Time,
	}
	return r.row.build()
}
