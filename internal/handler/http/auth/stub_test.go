package auth_test

import (
	"context"
	"sync"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

/*────────────────────  インメモリスタブ  ────────────────────*/

type stubUsers struct {
	repository.UserRepository // 未使用メソッドは埋め込みで満たす

	mu    sync.Mutex
	users map[string]*entity.User
}

func newStubUsers(users ...*entity.User) *stubUsers {
	s := &stubUsers{users: map[string]*entity.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUsers) Get(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id], nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return entity.ErrConflict
	}
	s.users[u.ID] = u
	return nil
}
