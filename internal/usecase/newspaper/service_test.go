package newspaper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
	"newsroom/internal/usecase/newspaper"
)

/*────────────────────  スタブ  ────────────────────*/

type stubNewsletters struct {
	repository.NewsletterRepository
	list  []*entity.Newsletter
	since time.Time
	err   error
}

func (s *stubNewsletters) ListPublishedSince(_ context.Context, since time.Time) ([]*entity.Newsletter, error) {
	s.since = since
	return s.list, s.err
}

type stubPapers struct {
	exists    bool
	lostRace  bool
	created   *entity.DailyNewspaper
	stored    *entity.DailyNewspaper
	existsDay time.Time
	err       error
}

func (s *stubPapers) ExistsSince(_ context.Context, day time.Time) (bool, error) {
	s.existsDay = day
	return s.exists, s.err
}

func (s *stubPapers) CreateWithItems(_ context.Context, p *entity.DailyNewspaper) (bool, error) {
	if s.lostRace {
		return false, nil
	}
	s.created = p
	return true, nil
}

func (s *stubPapers) GetSince(context.Context, time.Time) (*entity.DailyNewspaper, error) {
	return s.stored, s.err
}

type stubSummarizer struct {
	breakdown string
	out       string
	err       error
	calls     int
}

func (s *stubSummarizer) SummarizeDigest(_ context.Context, b string) (string, error) {
	s.calls++
	s.breakdown = b
	return s.out, s.err
}

// sequence returns the given draws in order, then repeats the last one.
func sequence(draws ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := draws[min(i, len(draws)-1)]
		i++
		return v
	}
}

var tokyo = time.FixedZone("JST", 9*60*60)

func category(c entity.Category) *entity.Category { return &c }

func published(id string, c *entity.Category, authorName string) *entity.Newsletter {
	n := &entity.Newsletter{ID: id, Title: id, Content: "x", Published: true, Category: c}
	if authorName != "-" {
		n.Author = &entity.User{ID: "u-" + id, Name: authorName}
	}
	return n
}

func newService(nl *stubNewsletters, papers *stubPapers, sum *stubSummarizer) *newspaper.Service {
	return &newspaper.Service{
		Newsletters: nl,
		Papers:      papers,
		Summarizer:  sum,
		// 2026-07-04 01:30 JST == 2026-07-03 16:30 UTC
		Now:      func() time.Time { return time.Date(2026, 7, 3, 16, 30, 0, 0, time.UTC) },
		Location: tokyo,
		Float64:  sequence(0.1, 0.5, 0.29, 0.3),
	}
}

/*────────────────────  Generate  ────────────────────*/

func TestGenerate_Success(t *testing.T) {
	nl := &stubNewsletters{list: []*entity.Newsletter{
		published("n1", category(entity.CategoryTechnology), "Alice"),
		published("n2", category(entity.CategoryScience), ""),
		published("n3", nil, "-"),
		published("n4", category(entity.CategoryTechnology), "Bob"),
	}}
	papers := &stubPapers{}
	sum := &stubSummarizer{out: "A busy day."}

	paper, err := newService(nl, papers, sum).Generate(context.Background())
	require.NoError(t, err)

	today := time.Date(2026, 7, 4, 0, 0, 0, 0, tokyo)
	assert.True(t, nl.since.Equal(today), "since = %v", nl.since)
	assert.True(t, papers.existsDay.Equal(today))
	assert.Equal(t, "Technology: 2, Science: 1, Other: 1", sum.breakdown)

	assert.Equal(t, "Daily Digest - 7/4/2026", paper.Title)
	assert.Equal(t, "A busy day.", paper.Summary)
	assert.True(t, paper.Date.Equal(today))
	assert.Same(t, paper, papers.created)

	type item struct {
		NewsletterID string
		Category     entity.Category
		Highlight    bool
		Summary      string
	}
	var got []item
	for _, it := range paper.Items {
		assert.Equal(t, paper.ID, it.NewspaperID)
		got = append(got, item{it.NewsletterID, it.Category, it.Highlight, it.Summary})
	}
	// カテゴリの初出順、カテゴリ内は入力順
	want := []item{
		{"n1", entity.CategoryTechnology, true, "A technology newsletter by Alice"},
		{"n4", entity.CategoryTechnology, false, "A technology newsletter by Bob"},
		{"n2", entity.CategoryScience, true, "A science newsletter by an author"},
		{"n3", entity.CategoryOther, false, "A other newsletter by an author"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_AlreadyExists(t *testing.T) {
	nl := &stubNewsletters{list: []*entity.Newsletter{published("n1", nil, "A")}}
	sum := &stubSummarizer{out: "x"}

	_, err := newService(nl, &stubPapers{exists: true}, sum).Generate(context.Background())
	require.ErrorIs(t, err, entity.ErrConflict)
	assert.Equal(t, "Newspaper already generated for today", err.Error())
	assert.Zero(t, sum.calls)
}

func TestGenerate_LostRace(t *testing.T) {
	nl := &stubNewsletters{list: []*entity.Newsletter{published("n1", nil, "A")}}

	_, err := newService(nl, &stubPapers{lostRace: true}, &stubSummarizer{out: "x"}).Generate(context.Background())
	require.ErrorIs(t, err, entity.ErrConflict)
}

func TestGenerate_NoNewsletters(t *testing.T) {
	sum := &stubSummarizer{out: "x"}
	papers := &stubPapers{}

	_, err := newService(&stubNewsletters{}, papers, sum).Generate(context.Background())

	var ve *entity.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "No newsletters available for today", ve.Error())
	assert.Zero(t, sum.calls)
	assert.Nil(t, papers.created)
}

func TestGenerate_SummaryFailureAborts(t *testing.T) {
	boom := errors.New("provider down")
	nl := &stubNewsletters{list: []*entity.Newsletter{published("n1", nil, "A")}}
	papers := &stubPapers{}

	_, err := newService(nl, papers, &stubSummarizer{err: boom}).Generate(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Nil(t, papers.created)
}

func TestGenerate_StoreErrors(t *testing.T) {
	boom := errors.New("db down")

	t.Run("exists check", func(t *testing.T) {
		_, err := newService(&stubNewsletters{}, &stubPapers{err: boom}, &stubSummarizer{}).Generate(context.Background())
		require.ErrorIs(t, err, boom)
	})
	t.Run("newsletter listing", func(t *testing.T) {
		_, err := newService(&stubNewsletters{err: boom}, &stubPapers{}, &stubSummarizer{}).Generate(context.Background())
		require.ErrorIs(t, err, boom)
	})
}

func TestGenerate_HighlightRate(t *testing.T) {
	var list []*entity.Newsletter
	for i := 0; i < 10; i++ {
		list = append(list, published(string(rune('a'+i)), nil, "A"))
	}
	svc := newService(&stubNewsletters{list: list}, &stubPapers{}, &stubSummarizer{out: "x"})
	draws := []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}
	svc.Float64 = sequence(draws...)

	paper, err := svc.Generate(context.Background())
	require.NoError(t, err)

	highlights := 0
	for _, it := range paper.Items {
		if it.Highlight {
			highlights++
		}
	}
	assert.Equal(t, 3, highlights)
}

/*────────────────────  GetToday  ────────────────────*/

func TestGetToday(t *testing.T) {
	stored := &entity.DailyNewspaper{ID: "p1", Title: "Daily Digest - 7/4/2026"}

	got, err := newService(&stubNewsletters{}, &stubPapers{stored: stored}, nil).GetToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)

	_, err = newService(&stubNewsletters{}, &stubPapers{}, nil).GetToday(context.Background())
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestToday_DefaultsToLocal(t *testing.T) {
	svc := &newspaper.Service{Now: func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.Local) }}
	assert.True(t, svc.Today().Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)))
}
