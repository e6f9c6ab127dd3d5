package user_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"newsroom/internal/common/pagination"
	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
	"newsroom/internal/usecase/user"
)

/*────────────────────  インメモリスタブ  ────────────────────*/

type stubUsers struct {
	byID      map[string]*entity.User
	created   []*entity.User
	updated   *entity.User
	image     string
	discover  []repository.UserWithCounts
	updateErr error
}

func (s *stubUsers) Get(_ context.Context, id string) (*entity.User, error) {
	if u, ok := s.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) GetByCustomLink(_ context.Context, link string) (*entity.User, error) {
	for _, u := range s.byID {
		if link != "" && u.CustomLink == link {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) List(context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	s.created = append(s.created, u)
	s.byID[u.ID] = u
	return nil
}

func (s *stubUsers) UpdateProfile(_ context.Context, u *entity.User) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = u
	return nil
}

func (s *stubUsers) UpdateImage(_ context.Context, _ string, image string) error {
	s.image = image
	return nil
}

func (s *stubUsers) ListDiscover(_ context.Context, _ string, offset, limit int) ([]repository.UserWithCounts, error) {
	if offset >= len(s.discover) {
		return nil, nil
	}
	end := min(offset+limit, len(s.discover))
	return s.discover[offset:end], nil
}

func (s *stubUsers) CountDiscover(context.Context, string) (int64, error) {
	return int64(len(s.discover)), nil
}

type stubFollows struct {
	repository.FollowRepository
	following map[string][]string
}

func (s *stubFollows) ListFollowingIDs(_ context.Context, id string) ([]string, error) {
	return s.following[id], nil
}

func (s *stubFollows) Exists(_ context.Context, a, b string) (bool, error) {
	for _, id := range s.following[a] {
		if id == b {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubFollows) CountFollowers(_ context.Context, id string) (int, error) {
	n := 0
	for _, ids := range s.following {
		for _, x := range ids {
			if x == id {
				n++
			}
		}
	}
	return n, nil
}

func (s *stubFollows) CountFollowing(_ context.Context, id string) (int, error) {
	return len(s.following[id]), nil
}

type stubNewsletters struct {
	repository.NewsletterRepository
	lastFilter repository.NewsletterFilter
}

func (s *stubNewsletters) List(_ context.Context, f repository.NewsletterFilter) ([]*entity.Newsletter, error) {
	s.lastFilter = f
	return []*entity.Newsletter{{ID: "n1", AuthorID: f.AuthorID, Published: true}}, nil
}

type fakeHasher struct{}

func (fakeHasher) Validate(p string) error {
	if len(p) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

func (fakeHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

var fixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newService() (*user.Service, *stubUsers, *stubNewsletters) {
	users := &stubUsers{byID: map[string]*entity.User{
		"alice": {ID: "alice", Name: "Alice", Email: "alice@example.com", CustomLink: "alice"},
		"bob":   {ID: "bob", Name: "Bob", Email: "bob@example.com"},
	}}
	news := &stubNewsletters{}
	svc := &user.Service{
		Users:       users,
		Follows:     &stubFollows{following: map[string][]string{"bob": {"alice"}}},
		Newsletters: news,
		Passwords:   fakeHasher{},
		Now:         func() time.Time { return fixedNow },
	}
	return svc, users, news
}

/*────────────────────  Create  ────────────────────*/

func TestCreate_Success(t *testing.T) {
	svc, users, _ := newService()

	u, err := svc.Create(context.Background(), user.CreateInput{
		Name: " Carol ", Email: "Carol@Example.com", Password: "longenough", Role: "ADMIN",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Email != "carol@example.com" || u.Name != "Carol" {
		t.Errorf("user = %+v", u)
	}
	if u.Role != entity.RoleAdmin {
		t.Errorf("role = %q, want ADMIN", u.Role)
	}
	if u.PasswordHash != "hashed:longenough" {
		t.Errorf("hash = %q", u.PasswordHash)
	}
	if !u.CreatedAt.Equal(fixedNow) || u.ID == "" {
		t.Errorf("id/createdAt not set: %+v", u)
	}
	if len(users.created) != 1 {
		t.Fatalf("created %d users, want 1", len(users.created))
	}
}

func TestCreate_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		in    user.CreateInput
		check func(error) bool
	}{
		{"duplicate email", user.CreateInput{Name: "Al", Email: "ALICE@example.com", Password: "longenough"},
			func(err error) bool { return errors.Is(err, entity.ErrConflict) }},
		{"short name", user.CreateInput{Name: "A", Email: "a@example.com", Password: "longenough"},
			func(err error) bool { return errors.Is(err, entity.ErrInvalidInput) }},
		{"bad email", user.CreateInput{Name: "Al", Email: "nope", Password: "longenough"},
			func(err error) bool { return errors.Is(err, entity.ErrInvalidInput) }},
		{"weak password", user.CreateInput{Name: "Al", Email: "a@example.com", Password: "short"},
			func(err error) bool { return errors.Is(err, entity.ErrInvalidInput) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _ := newService()
			_, err := svc.Create(context.Background(), tt.in)
			if !tt.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(users.created) != 0 {
				t.Errorf("user created despite error")
			}
		})
	}
}

/*────────────────────  UpdateProfile / UpdateImage  ────────────────────*/

func TestUpdateProfile(t *testing.T) {
	svc, users, _ := newService()

	u, err := svc.UpdateProfile(context.Background(), "bob", user.ProfileInput{
		Name: "Bobby", Bio: "  hi  ", CustomLink: "bobby",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if u.Name != "Bobby" || u.Bio != "hi" || u.CustomLink != "bobby" {
		t.Errorf("user = %+v", u)
	}
	if users.updated == nil || users.updated.ID != "bob" {
		t.Errorf("repository not updated")
	}
}

func TestUpdateProfile_KeepOwnLink(t *testing.T) {
	svc, _, _ := newService()
	if _, err := svc.UpdateProfile(context.Background(), "alice", user.ProfileInput{Name: "Alice", CustomLink: "alice"}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
}

func TestUpdateProfile_LinkTaken(t *testing.T) {
	svc, users, _ := newService()
	_, err := svc.UpdateProfile(context.Background(), "bob", user.ProfileInput{Name: "Bob", CustomLink: "alice"})
	if !errors.Is(err, user.ErrCustomLinkTaken) {
		t.Fatalf("err = %v, want ErrCustomLinkTaken", err)
	}
	if users.updated != nil {
		t.Error("repository updated despite conflict")
	}
}

func TestUpdateProfile_RaceConflict(t *testing.T) {
	svc, users, _ := newService()
	users.updateErr = entity.ErrConflict
	_, err := svc.UpdateProfile(context.Background(), "bob", user.ProfileInput{Name: "Bob", CustomLink: "newlink"})
	if !errors.Is(err, user.ErrCustomLinkTaken) {
		t.Fatalf("err = %v, want ErrCustomLinkTaken", err)
	}
}

func TestUpdateProfile_Validation(t *testing.T) {
	svc, _, _ := newService()
	for _, in := range []user.ProfileInput{
		{Name: "B"},
		{Name: "Bob", CustomLink: "no spaces"},
	} {
		if _, err := svc.UpdateProfile(context.Background(), "bob", in); !errors.Is(err, entity.ErrInvalidInput) {
			t.Errorf("UpdateProfile(%+v) err = %v, want validation", in, err)
		}
	}
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.UpdateProfile(context.Background(), "ghost", user.ProfileInput{Name: "Ghost"})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestUpdateImage(t *testing.T) {
	svc, users, _ := newService()

	if err := svc.UpdateImage(context.Background(), "bob", ""); !errors.Is(err, entity.ErrInvalidInput) {
		t.Fatalf("empty url err = %v", err)
	} else if !strings.Contains(err.Error(), "Image URL is required") {
		t.Errorf("message = %q", err.Error())
	}
	if err := svc.UpdateImage(context.Background(), "bob", "https://cdn.example.com/b.png"); err != nil {
		t.Fatalf("UpdateImage: %v", err)
	}
	if users.image != "https://cdn.example.com/b.png" {
		t.Errorf("image = %q", users.image)
	}
}

/*────────────────────  Discover / Profile  ────────────────────*/

func TestDiscover(t *testing.T) {
	svc, users, _ := newService()
	users.discover = []repository.UserWithCounts{
		{User: &entity.User{ID: "alice"}, FollowerCount: 1},
		{User: &entity.User{ID: "carol"}},
		{User: &entity.User{ID: "dave"}},
	}

	res, err := svc.Discover(context.Background(), "bob", pagination.Params{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	got := make(map[string]bool)
	for _, e := range res.Data {
		got[e.User.ID] = e.IsFollowing
	}
	want := map[string]bool{"alice": true, "carol": false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("following flags mismatch (-want +got):\n%s", diff)
	}
	wantMeta := pagination.Metadata{Total: 3, Page: 1, Limit: 2, TotalPages: 2}
	if diff := cmp.Diff(wantMeta, res.Pagination); diff != "" {
		t.Errorf("pagination mismatch (-want +got):\n%s", diff)
	}
}

func TestProfile(t *testing.T) {
	svc, _, news := newService()
	bob := &entity.User{ID: "bob"}

	p, err := svc.Profile(context.Background(), "alice", bob)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if !p.IsFollowing || p.FollowerCount != 1 || p.FollowingCount != 0 {
		t.Errorf("profile = %+v", p)
	}
	if !news.lastFilter.PublishedOnly || news.lastFilter.AuthorID != "alice" {
		t.Errorf("filter = %+v", news.lastFilter)
	}
	if len(p.Newsletters) != 1 {
		t.Errorf("newsletters = %d", len(p.Newsletters))
	}
}

func TestProfile_ByCustomLinkAndAnonymous(t *testing.T) {
	svc, _, _ := newService()
	users := svc.Users.(*stubUsers)
	users.byID["alice"].CustomLink = "ally"

	p, err := svc.Profile(context.Background(), "ally", nil)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.User.ID != "alice" || p.IsFollowing {
		t.Errorf("profile = %+v", p)
	}
}

func TestProfile_NotFound(t *testing.T) {
	svc, _, _ := newService()
	if _, err := svc.Profile(context.Background(), "ghost", nil); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
