package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"newsroom/internal/domain/entity"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T, users *stubUsers) *AuthService {
	t.Helper()
	return &AuthService{
		Users:    users,
		Sessions: NewSessionManager(testSecret, 7*24*time.Hour),
		Policy:   PasswordPolicy{MinLength: 8, BcryptCost: bcrypt.MinCost},
	}
}

func mustHash(t *testing.T, pass string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_SignIn(t *testing.T) {
	ada := &entity.User{ID: "u1", Email: "ada@example.com", PasswordHash: mustHash(t, "correct horse"), Role: entity.RoleUser}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "success", email: "ada@example.com", password: "correct horse"},
		{name: "email is case-insensitive", email: " ADA@example.com ", password: "correct horse"},
		{name: "wrong password", email: "ada@example.com", password: "battery staple", wantErr: entity.ErrUnauthorized},
		{name: "unknown email", email: "eve@example.com", password: "correct horse", wantErr: entity.ErrUnauthorized},
		{name: "missing fields", email: "", password: "", wantErr: entity.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, newStubUsers(ada))
			user, sess, err := svc.SignIn(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sess)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u1", user.ID)
			require.NotNil(t, sess)
			assert.NotEmpty(t, sess.Token)

			// the token resolves back to the same user
			got := svc.CurrentUser(context.Background(), sess.Token)
			require.NotNil(t, got)
			assert.Equal(t, "u1", got.ID)
		})
	}
}

func TestAuthService_SignIn_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	ada := &entity.User{ID: "u1", Email: "ada@example.com", PasswordHash: mustHash(t, "correct horse")}
	svc := newTestService(t, newStubUsers(ada))

	_, _, errWrong := svc.SignIn(context.Background(), "ada@example.com", "nope-nope")
	_, _, errUnknown := svc.SignIn(context.Background(), "who@example.com", "nope-nope")
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestAuthService_SignIn_StoreError(t *testing.T) {
	users := newStubUsers()
	users.err = errors.New("db down")
	svc := newTestService(t, users)

	_, _, err := svc.SignIn(context.Background(), "ada@example.com", "whatever1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, entity.ErrUnauthorized))
}

func TestAuthService_CurrentUser(t *testing.T) {
	ada := &entity.User{ID: "u1", Email: "ada@example.com"}

	t.Run("empty token", func(t *testing.T) {
		users := newStubUsers(ada)
		svc := newTestService(t, users)
		assert.Nil(t, svc.CurrentUser(context.Background(), ""))
		assert.Zero(t, users.calls, "store must not be touched")
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := newTestService(t, newStubUsers(ada))
		assert.Nil(t, svc.CurrentUser(context.Background(), "u1"))
	})

	t.Run("deleted user", func(t *testing.T) {
		users := newStubUsers(ada)
		svc := newTestService(t, users)
		sess, err := svc.CreateSession(ada)
		require.NoError(t, err)
		delete(users.byID, "u1")
		assert.Nil(t, svc.CurrentUser(context.Background(), sess.Token))
	})

	t.Run("store error is swallowed", func(t *testing.T) {
		users := newStubUsers(ada)
		svc := newTestService(t, users)
		sess, err := svc.CreateSession(ada)
		require.NoError(t, err)
		users.err = errors.New("db down")
		assert.Nil(t, svc.CurrentUser(context.Background(), sess.Token))
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		svc := newTestService(t, newStubUsers(ada))
		other := NewSessionManager("ffffffffffffffffffffffffffffffff", time.Hour)
		token, _, err := other.Issue("u1", entity.RoleUser)
		require.NoError(t, err)
		assert.Nil(t, svc.CurrentUser(context.Background(), token))
	})
}

func TestAuthService_AdminBypass(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		users := newStubUsers()
		svc := newTestService(t, users)
		_, err := svc.AdminSession(ctx)
		assert.ErrorIs(t, err, ErrAdminBypassDisabled)
		assert.Empty(t, users.byID)
	})

	t.Run("enabled creates a backing user row", func(t *testing.T) {
		users := newStubUsers()
		svc := newTestService(t, users)
		svc.AdminBypass = true

		sess, err := svc.AdminSession(ctx)
		require.NoError(t, err)

		stored, ok := users.byID[AdminFixtureID]
		require.True(t, ok, "fixture row must exist for foreign keys")
		assert.True(t, stored.IsAdmin())
		assert.Empty(t, stored.PasswordHash)

		u := svc.CurrentUser(ctx, sess.Token)
		require.NotNil(t, u)
		assert.True(t, u.IsAdmin())
		assert.Equal(t, AdminFixtureID, u.ID)
	})

	t.Run("second session reuses the row", func(t *testing.T) {
		renamed := adminFixture()
		renamed.Name = "Root"
		users := newStubUsers(renamed)
		svc := newTestService(t, users)
		svc.AdminBypass = true

		sess, err := svc.AdminSession(ctx)
		require.NoError(t, err)
		assert.Len(t, users.byID, 1)
		assert.Equal(t, "Root", svc.CurrentUser(ctx, sess.Token).Name)
	})

	t.Run("store error", func(t *testing.T) {
		users := newStubUsers()
		users.err = errors.New("db down")
		svc := newTestService(t, users)
		svc.AdminBypass = true

		_, err := svc.AdminSession(ctx)
		assert.ErrorContains(t, err, "db down")
	})

	t.Run("fixture cannot sign in with a password", func(t *testing.T) {
		users := newStubUsers()
		svc := newTestService(t, users)
		svc.AdminBypass = true
		_, err := svc.AdminSession(ctx)
		require.NoError(t, err)

		_, _, err = svc.SignIn(ctx, adminFixture().Email, "anything-at-all")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("fixture token rejected once bypass is turned off", func(t *testing.T) {
		svc := newTestService(t, newStubUsers())
		svc.AdminBypass = true
		sess, err := svc.AdminSession(ctx)
		require.NoError(t, err)

		svc.AdminBypass = false
		assert.Nil(t, svc.CurrentUser(ctx, sess.Token))
	})
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	users := newStubUsers()
	svc := newTestService(t, users)

	created, err := svc.EnsureAdmin(context.Background(), "Root", "Root@Example.com", "a-long-admin-pass")
	require.NoError(t, err)
	assert.True(t, created)

	admin, _ := users.GetByEmail(context.Background(), "root@example.com")
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.True(t, VerifyPassword(admin.PasswordHash, "a-long-admin-pass"))

	created, err = svc.EnsureAdmin(context.Background(), "Root", "root@example.com", "a-long-admin-pass")
	require.NoError(t, err)
	assert.False(t, created, "second call must be a no-op")

	_, err = svc.EnsureAdmin(context.Background(), "Root", "new@example.com", "password")
	assert.Error(t, err, "weak password must be rejected")
}
