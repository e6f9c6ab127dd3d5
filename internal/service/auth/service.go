// Package auth implements credential verification and session resolution.
// It is framework-agnostic: HTTP cookie handling lives in the handler layer.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

// ErrInvalidCredentials is returned by SignIn for unknown emails and wrong passwords alike.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", entity.ErrUnauthorized)

// ErrAdminBypassDisabled is returned by AdminSession when the bypass is not enabled.
var ErrAdminBypassDisabled = errors.New("admin bypass is disabled")

// Session is an issued session token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService handles sign-in and session lookup.
type AuthService struct {
	Users       repository.UserRepository
	Sessions    *SessionManager
	Policy      PasswordPolicy
	AdminBypass bool
}

// adminFixture is the identity behind bypass sessions. It has no password
// hash, so it cannot sign in through SignIn.
func adminFixture() *entity.User {
	return &entity.User{
		ID:    AdminFixtureID,
		Name:  "Admin",
		Email: "admin@newsroom.invalid",
		Role:  entity.RoleAdmin,
	}
}

// SignIn verifies email and password and issues a session for the user.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*entity.User, *Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, nil, &entity.ValidationError{Field: "email", Message: "email and password are required"}
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("sign in: %w", err)
	}
	if user == nil || !VerifyPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := s.CreateSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// CreateSession issues a session token for user.
func (s *AuthService) CreateSession(user *entity.User) (*Session, error) {
	token, exp, err := s.Sessions.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &Session{Token: token, ExpiresAt: exp}, nil
}

// AdminSession issues a session for the admin fixture. The fixture's users
// row is created on first use so it can author newsletters and follow users.
func (s *AuthService) AdminSession(ctx context.Context) (*Session, error) {
	if !s.AdminBypass {
		return nil, ErrAdminBypassDisabled
	}
	admin, err := s.ensureAdminFixture(ctx)
	if err != nil {
		return nil, err
	}
	return s.CreateSession(admin)
}

func (s *AuthService) ensureAdminFixture(ctx context.Context) (*entity.User, error) {
	existing, err := s.Users.Get(ctx, AdminFixtureID)
	if err != nil {
		return nil, fmt.Errorf("admin fixture: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	admin := adminFixture()
	admin.CreatedAt = time.Now()
	err = s.Users.Create(ctx, admin)
	if err == nil {
		slog.InfoContext(ctx, "admin fixture account created", slog.String("user_id", admin.ID))
		return admin, nil
	}
	if !errors.Is(err, entity.ErrConflict) {
		return nil, fmt.Errorf("admin fixture: %w", err)
	}

	// lost a race with a concurrent bypass request
	existing, getErr := s.Users.Get(ctx, AdminFixtureID)
	if getErr != nil || existing == nil {
		return nil, fmt.Errorf("admin fixture: %w", err)
	}
	return existing, nil
}

// CurrentUser resolves a session token to a user. It returns nil for an absent,
// invalid or expired token, for a deleted user, and on store errors.
func (s *AuthService) CurrentUser(ctx context.Context, token string) *entity.User {
	if token == "" {
		return nil
	}
	claims, err := s.Sessions.Parse(token)
	if err != nil {
		return nil
	}
	if claims.Subject == AdminFixtureID && !s.AdminBypass {
		return nil
	}

	user, err := s.Users.Get(ctx, claims.Subject)
	if err != nil {
		slog.WarnContext(ctx, "session lookup failed",
			slog.String("user_id", claims.Subject),
			slog.Any("error", err))
		return nil
	}
	return user
}

// EnsureAdmin creates an admin account for email when none exists.
// It is idempotent and leaves an existing account untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("ensure admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}
	if err := s.Policy.Validate(password); err != nil {
		return false, fmt.Errorf("ensure admin: %w", err)
	}
	hash, err := s.Policy.Hash(password)
	if err != nil {
		return false, fmt.Errorf("ensure admin: %w", err)
	}
	admin := &entity.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := s.Users.Create(ctx, admin); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("ensure admin: %w", err)
	}
	return true, nil
}
