// Package newspaper implements the daily newspaper aggregator: it groups
// the day's published newsletters by category, asks the assistant for a
// digest summary and stores one newspaper per calendar day.
package newspaper

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsroom/internal/domain/entity"
	"newsroom/internal/observability/metrics"
	"newsroom/internal/repository"
)

// DigestSummarizer writes the digest paragraph for a category breakdown.
type DigestSummarizer interface {
	SummarizeDigest(ctx context.Context, breakdown string) (string, error)
}

// Service generates and reads daily newspapers.
type Service struct {
	Newsletters repository.NewsletterRepository
	Papers      repository.NewspaperRepository
	Summarizer  DigestSummarizer

	// Now defaults to time.Now.
	Now func() time.Time
	// Location defines the calendar day. Defaults to time.Local.
	Location *time.Location
	// Float64 draws highlight decisions in [0,1). Defaults to math/rand/v2.
	Float64 func() float64
}

// categoryGroup holds the newsletters of one category in first-seen order.
type categoryGroup struct {
	category    entity.Category
	newsletters []*entity.Newsletter
}

// Generate builds and stores today's newspaper.
//
// It returns a ConflictError when today's newspaper already exists (including
// a concurrent run winning the insert) and a ValidationError when nothing was
// published today. Summary failures abort without writing anything.
func (s *Service) Generate(ctx context.Context) (*entity.DailyNewspaper, error) {
	today := s.Today()

	exists, err := s.Papers.ExistsSince(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("check existing newspaper: %w", err)
	}
	if exists {
		metrics.RecordNewspaperGenerated("already_exists", 0)
		return nil, &entity.ConflictError{Message: "Newspaper already generated for today"}
	}

	newsletters, err := s.Newsletters.ListPublishedSince(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("list today's newsletters: %w", err)
	}
	if len(newsletters) == 0 {
		metrics.RecordNewspaperGenerated("no_content", 0)
		return nil, &entity.ValidationError{Message: "No newsletters available for today"}
	}

	groups := groupByCategory(newsletters)

	summary, err := s.Summarizer.SummarizeDigest(ctx, breakdown(groups))
	if err != nil {
		metrics.RecordNewspaperGenerated("failure", 0)
		return nil, fmt.Errorf("generate digest summary: %w", err)
	}

	paper := &entity.DailyNewspaper{
		ID:        uuid.NewString(),
		Date:      today,
		Title:     entity.NewspaperTitle(today),
		Summary:   summary,
		CreatedAt: s.now(),
	}
	for _, g := range groups {
		for _, n := range g.newsletters {
			paper.Items = append(paper.Items, &entity.DailyNewspaperItem{
				ID:           uuid.NewString(),
				NewspaperID:  paper.ID,
				Category:     g.category,
				Highlight:    s.float64() < entity.HighlightProbability,
				Summary:      itemSummary(g.category, n.Author),
				NewsletterID: n.ID,
				Newsletter:   n,
			})
		}
	}

	created, err := s.Papers.CreateWithItems(ctx, paper)
	if err != nil {
		metrics.RecordNewspaperGenerated("failure", 0)
		return nil, fmt.Errorf("store newspaper: %w", err)
	}
	if !created {
		metrics.RecordNewspaperGenerated("already_exists", 0)
		return nil, &entity.ConflictError{Message: "Newspaper already generated for today"}
	}

	metrics.RecordNewspaperGenerated("created", len(paper.Items))
	slog.InfoContext(ctx, "daily newspaper generated",
		slog.String("newspaper_id", paper.ID),
		slog.String("date", today.Format("2006-01-02")),
		slog.Int("items", len(paper.Items)),
		slog.Int("categories", len(groups)))
	return paper, nil
}

// GetToday returns today's newspaper with its items, or a NotFoundError.
func (s *Service) GetToday(ctx context.Context) (*entity.DailyNewspaper, error) {
	paper, err := s.Papers.GetSince(ctx, s.Today())
	if err != nil {
		return nil, fmt.Errorf("get today's newspaper: %w", err)
	}
	if paper == nil {
		return nil, &entity.NotFoundError{Resource: "newspaper", Message: "No newspaper available yet"}
	}
	return paper, nil
}

// Today returns local midnight of the current day.
func (s *Service) Today() time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return entity.StartOfDay(s.now().In(loc))
}

func groupByCategory(newsletters []*entity.Newsletter) []*categoryGroup {
	var groups []*categoryGroup
	index := make(map[entity.Category]*categoryGroup)
	for _, n := range newsletters {
		c := n.CategoryOrOther()
		g, ok := index[c]
		if !ok {
			g = &categoryGroup{category: c}
			index[c] = g
			groups = append(groups, g)
		}
		g.newsletters = append(g.newsletters, n)
	}
	return groups
}

// breakdown renders "Technology: 2, Science: 1".
func breakdown(groups []*categoryGroup) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = fmt.Sprintf("%s: %d", g.category, len(g.newsletters))
	}
	return strings.Join(parts, ", ")
}

func itemSummary(c entity.Category, author *entity.User) string {
	name := "an author"
	if author != nil && author.Name != "" {
		name = author.Name
	}
	return fmt.Sprintf("A %s newsletter by %s", strings.ToLower(c.String()), name)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) float64() float64 {
	if s.Float64 != nil {
		return s.Float64()
	}
	// #nosec G404 -- highlight selection is cosmetic
	return rand.Float64()
}
