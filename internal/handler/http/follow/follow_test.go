package follow_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/follow"
	"newsroom/internal/repository"
	followUC "newsroom/internal/usecase/follow"
)

/*────────────────────  インメモリスタブ  ────────────────────*/

type stubUsers struct {
	repository.UserRepository
	ids map[string]bool
}

func (s stubUsers) Get(_ context.Context, id string) (*entity.User, error) {
	if !s.ids[id] {
		return nil, nil
	}
	return &entity.User{ID: id}, nil
}

type edge struct{ from, to string }

type stubFollows struct {
	repository.FollowRepository
	edges map[edge]bool
}

func (s *stubFollows) Exists(_ context.Context, from, to string) (bool, error) {
	return s.edges[edge{from, to}], nil
}

func (s *stubFollows) Create(_ context.Context, f *entity.Follow) error {
	s.edges[edge{f.FollowerID, f.FollowingID}] = true
	return nil
}

func (s *stubFollows) Delete(_ context.Context, from, to string) (bool, error) {
	e := edge{from, to}
	existed := s.edges[e]
	delete(s.edges, e)
	return existed, nil
}

func TestToggleHandler(t *testing.T) {
	follows := &stubFollows{edges: map[edge]bool{}}
	svc := followUC.Service{
		Users:   stubUsers{ids: map[string]bool{"alice": true, "bob": true}},
		Follows: follows,
	}
	mux := http.NewServeMux()
	follow.Register(mux, svc)

	alice := &entity.User{ID: "alice"}
	post := func(as *entity.User, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/follow", strings.NewReader(body))
		if as != nil {
			req = req.WithContext(auth.WithUser(req.Context(), as))
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec
	}

	steps := []struct {
		name     string
		as       *entity.User
		body     string
		wantCode int
		wantBody string
	}{
		{"anonymous", nil, `{"followingId":"bob","action":"follow"}`, http.StatusUnauthorized, "Unauthorized"},
		{"follow", alice, `{"followingId":"bob","action":"follow"}`, http.StatusOK, "Successfully followed user"},
		{"follow twice", alice, `{"followingId":"bob","action":"follow"}`, http.StatusBadRequest, "Already following this user"},
		{"self", alice, `{"followingId":"alice","action":"follow"}`, http.StatusBadRequest, "You cannot follow yourself"},
		{"unknown target", alice, `{"followingId":"carol","action":"follow"}`, http.StatusNotFound, "not found"},
		{"bad action", alice, `{"followingId":"bob","action":"block"}`, http.StatusBadRequest, "Invalid action"},
		{"missing fields", alice, `{"followingId":"bob"}`, http.StatusBadRequest, "Missing required fields"},
		{"unfollow", alice, `{"followingId":"bob","action":"unfollow"}`, http.StatusOK, "Successfully unfollowed user"},
		{"unfollow again", alice, `{"followingId":"bob","action":"unfollow"}`, http.StatusNotFound, "Not following this user"},
	}
	for _, st := range steps {
		rec := post(st.as, st.body)
		if rec.Code != st.wantCode {
			t.Fatalf("%s: status = %d, want %d (%s)", st.name, rec.Code, st.wantCode, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), st.wantBody) {
			t.Errorf("%s: body = %s, want substring %q", st.name, rec.Body.String(), st.wantBody)
		}
	}
	if len(follows.edges) != 0 {
		t.Errorf("edges left behind: %v", follows.edges)
	}
}
