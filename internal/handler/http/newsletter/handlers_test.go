package newsletter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"newsroom/internal/common/pagination"
	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/newsletter"
	"newsroom/internal/repository"
	nlUC "newsroom/internal/usecase/newsletter"
)

/*────────────────────  インメモリスタブ  ────────────────────*/

type stubRepo struct {
	data map[string]*entity.Newsletter
	feed []*entity.Newsletter
}

func newStubRepo(items ...*entity.Newsletter) *stubRepo {
	s := &stubRepo{data: map[string]*entity.Newsletter{}}
	for _, n := range items {
		s.data[n.ID] = n
	}
	return s
}

func (s *stubRepo) Get(_ context.Context, id string) (*entity.Newsletter, error) {
	n, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (s *stubRepo) List(_ context.Context, f repository.NewsletterFilter) ([]*entity.Newsletter, error) {
	var out []*entity.Newsletter
	for _, n := range s.data {
		if f.AuthorID != "" && n.AuthorID != f.AuthorID {
			continue
		}
		if f.PublishedOnly && !n.Published {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *stubRepo) Create(_ context.Context, n *entity.Newsletter) error {
	s.data[n.ID] = n
	return nil
}

func (s *stubRepo) Update(_ context.Context, n *entity.Newsletter) error {
	s.data[n.ID] = n
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	if _, ok := s.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *stubRepo) ListFeed(_ context.Context, _ string, offset, limit int) ([]*entity.Newsletter, error) {
	if offset >= len(s.feed) {
		return nil, nil
	}
	end := min(offset+limit, len(s.feed))
	return s.feed[offset:end], nil
}

func (s *stubRepo) CountFeed(context.Context, string) (int64, error) {
	return int64(len(s.feed)), nil
}

func (s *stubRepo) ListPublishedSince(context.Context, time.Time) ([]*entity.Newsletter, error) {
	return nil, nil
}

type fixedCategorizer entity.Category

func (c fixedCategorizer) Categorize(context.Context, string) entity.Category {
	return entity.Category(c)
}

/*────────────────────  ヘルパー  ────────────────────*/

var (
	alice = &entity.User{ID: "alice", Name: "Alice", Email: "alice@example.com", Role: entity.RoleUser}
	bob   = &entity.User{ID: "bob", Name: "Bob", Email: "bob@example.com", Role: entity.RoleUser}
	admin = &entity.User{ID: "root", Name: "Admin", Role: entity.RoleAdmin}

	t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
)

func fixtures() *stubRepo {
	return newStubRepo(
		&entity.Newsletter{ID: "pub", Title: "Published", Content: "body", AuthorID: "alice", Author: alice, Published: true, CreatedAt: t0},
		&entity.Newsletter{ID: "draft", Title: "Draft", Content: "wip", AuthorID: "alice", Author: alice, CreatedAt: t0.Add(time.Hour)},
	)
}

func newServer(repo *stubRepo, as *entity.User) http.Handler {
	mux := http.NewServeMux()
	svc := nlUC.Service{Repo: repo, Categorizer: fixedCategorizer(entity.CategoryScience), Now: func() time.Time { return t0 }}
	newsletter.Register(mux, svc, pagination.DefaultConfig())
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if as != nil {
			r = r.WithContext(auth.WithUser(r.Context(), as))
		}
		mux.ServeHTTP(w, r)
	})
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

/*────────────────────  テスト  ────────────────────*/

func TestCreate(t *testing.T) {
	repo := newStubRepo()
	h := newServer(repo, alice)

	rec := do(h, http.MethodPost, "/api/newsletters", `{"title":"Hello","content":"<p>World</p>"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got newsletter.DTO
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Title != "Hello" || got.AuthorID != "alice" || got.Published {
		t.Errorf("unexpected newsletter: %+v", got)
	}
	if len(repo.data) != 1 {
		t.Errorf("stored %d newsletters, want 1", len(repo.data))
	}
}

func TestCreate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		as   *entity.User
		body string
		want int
	}{
		{"anonymous", nil, `{"title":"a","content":"b"}`, http.StatusUnauthorized},
		{"missing title", alice, `{"content":"b"}`, http.StatusBadRequest},
		{"blank content", alice, `{"title":"a","content":"   "}`, http.StatusBadRequest},
		{"malformed", alice, `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newServer(newStubRepo(), tt.as), http.MethodPost, "/api/newsletters", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestGet_Visibility(t *testing.T) {
	tests := []struct {
		name string
		as   *entity.User
		id   string
		want int
	}{
		{"published to anonymous", nil, "pub", http.StatusOK},
		{"draft to anonymous", nil, "draft", http.StatusNotFound},
		{"draft to other user", bob, "draft", http.StatusNotFound},
		{"draft to author", alice, "draft", http.StatusOK},
		{"draft to admin", admin, "draft", http.StatusOK},
		{"missing", alice, "nope", http.StatusNotFound},
		{"nested path", alice, "pub/extra", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newServer(fixtures(), tt.as), http.MethodGet, "/api/newsletters/"+tt.id, "")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestGet_HidesAuthorEmailFromAnonymous(t *testing.T) {
	rec := do(newServer(fixtures(), nil), http.MethodGet, "/api/newsletters/pub", "")
	if strings.Contains(rec.Body.String(), "alice@example.com") {
		t.Errorf("anonymous response leaks author email: %s", rec.Body.String())
	}
}

func TestUpdate(t *testing.T) {
	t.Run("author updates and category is inferred", func(t *testing.T) {
		repo := fixtures()
		rec := do(newServer(repo, alice), http.MethodPut, "/api/newsletters/draft",
			`{"title":"Final","content":"done","published":true}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Message    string         `json:"message"`
			Newsletter newsletter.DTO `json:"newsletter"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if resp.Message != "Newsletter updated successfully" {
			t.Errorf("message = %q", resp.Message)
		}
		if resp.Newsletter.Category == nil || *resp.Newsletter.Category != "Science" {
			t.Errorf("category = %v, want Science", resp.Newsletter.Category)
		}
		if !repo.data["draft"].Published {
			t.Error("newsletter not published")
		}
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		rec := do(newServer(fixtures(), bob), http.MethodPut, "/api/newsletters/pub", `{"title":"x"}`)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "You are not authorized to update this newsletter") {
			t.Errorf("body = %s", rec.Body.String())
		}
	})

	t.Run("invalid category", func(t *testing.T) {
		rec := do(newServer(fixtures(), alice), http.MethodPut, "/api/newsletters/pub", `{"category":"Cooking"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("missing", func(t *testing.T) {
		rec := do(newServer(fixtures(), admin), http.MethodPut, "/api/newsletters/nope", `{"title":"x"}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestDelete(t *testing.T) {
	repo := fixtures()
	if rec := do(newServer(repo, bob), http.MethodDelete, "/api/newsletters/pub", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("non-author delete: status = %d, want 403", rec.Code)
	}
	rec := do(newServer(repo, admin), http.MethodDelete, "/api/newsletters/pub", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if _, ok := repo.data["pub"]; ok {
		t.Error("newsletter still stored")
	}
}

func TestList_DraftVisibility(t *testing.T) {
	tests := []struct {
		name  string
		as    *entity.User
		query string
		want  int
	}{
		{"own listing includes drafts", alice, "?authorId=alice", 2},
		{"other user's listing hides drafts", bob, "?authorId=alice", 1},
		{"unfiltered listing hides drafts", alice, "", 1},
		{"admin sees everything", admin, "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newServer(fixtures(), tt.as), http.MethodGet, "/api/newsletters"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			var got []newsletter.DTO
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d newsletters, want %d", len(got), tt.want)
			}
		})
	}
}

func TestAdminList(t *testing.T) {
	if rec := do(newServer(fixtures(), alice), http.MethodGet, "/api/admin/newsletters", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("non-admin: status = %d, want 401", rec.Code)
	}
	rec := do(newServer(fixtures(), admin), http.MethodGet, "/api/admin/newsletters", "")
	var got []newsletter.DTO
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("got %d newsletters, want 2", len(got))
	}
}

func TestFeed(t *testing.T) {
	repo := newStubRepo()
	for i := range 5 {
		repo.feed = append(repo.feed, &entity.Newsletter{
			ID: string(rune('a' + i)), Title: "t", Content: "c", AuthorID: "bob", Author: bob, Published: true, CreatedAt: t0,
		})
	}
	h := newServer(repo, alice)

	rec := do(h, http.MethodGet, "/api/feed?page=2&limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp pagination.Response[newsletter.DTO]
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	want := pagination.Metadata{Total: 5, Page: 2, Limit: 2, TotalPages: 3}
	if resp.Pagination != want {
		t.Errorf("pagination = %+v, want %+v", resp.Pagination, want)
	}
	if len(resp.Data) != 2 || resp.Data[0].ID != "c" {
		t.Errorf("unexpected page: %+v", resp.Data)
	}

	if rec := do(h, http.MethodGet, "/api/feed?limit=1000", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("oversized limit: status = %d, want 400", rec.Code)
	}
	if rec := do(newServer(repo, nil), http.MethodGet, "/api/feed", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", rec.Code)
	}
}
