package auth

import (
	"context"
	"errors"
	"sync"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

/*────────────────────  インメモリスタブ  ────────────────────*/

type stubUsers struct {
	mu    sync.Mutex
	byID  map[string]*entity.User
	err   error // 強制エラー注入用
	calls int
}

func newStubUsers(users ...*entity.User) *stubUsers {
	s := &stubUsers{byID: map[string]*entity.User{}}
	for _, u := range users {
		s.byID[u.ID] = u
	}
	return s
}

func (s *stubUsers) Get(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.byID[id], nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) GetByCustomLink(context.Context, string) (*entity.User, error) { return nil, nil }
func (s *stubUsers) List(context.Context) ([]*entity.User, error)                  { return nil, nil }

func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, existing := range s.byID {
		if existing.Email == u.Email {
			return entity.ErrConflict
		}
	}
	s.byID[u.ID] = u
	return nil
}

func (s *stubUsers) UpdateProfile(context.Context, *entity.User) error    { return errors.New("unused") }
func (s *stubUsers) UpdateImage(context.Context, string, string) error    { return errors.New("unused") }
func (s *stubUsers) CountDiscover(context.Context, string) (int64, error) { return 0, nil }
func (s *stubUsers) ListDiscover(context.Context, string, int, int) ([]repository.UserWithCounts, error) {
	return nil, nil
}
