package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/identity-core/auth-service/internal/core/domain"
	"github.com/identity-core/auth-service/internal/core/ports"
	"github.com/identity-core/auth-service/internal/token"
)

// AuthService implements registration, login, and role switching.
type AuthService struct {
	repo     ports.UserRepository
	tokens   *token.Engine
	adminKey string
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *token.Engine, adminKey string, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, adminKey: adminKey, log: log}
}

// SignUp creates a USER-role account. The existence check leaves a benign
// race window under concurrent identical submissions; the repository's
// uniqueness constraint is the authoritative guard and also reports
// domain.ErrUserExists.
func (s *AuthService) SignUp(ctx context.Context, username, password, nickname string) (*domain.User, error) {
	return s.signUp(ctx, username, password, nickname, domain.RoleUser)
}

// AdminSignUp creates an ADMIN-role account when the supplied key matches the
// configured admin registration key. No record is created on a key mismatch.
func (s *AuthService) AdminSignUp(ctx context.Context, username, password, nickname, adminKey string) (*domain.User, error) {
	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	if adminKey != s.adminKey {
		s.log.Warn().Str("username", username).Msg("admin sign-up rejected: key mismatch")
		return nil, domain.ErrInvalidAdminKey
	}

	return s.create(ctx, username, password, nickname, domain.RoleAdmin)
}

// Login verifies the submitted credentials and issues a token carrying the
// user's username and current role. Unknown-user and wrong-password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		// Only an unknown user collapses into the credential error; an
		// infrastructure failure is not the caller's fault and surfaces as
		// an opaque server error instead.
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("login succeeded")
	return tok, user, nil
}

// SwitchRole promotes the target user to ADMIN. The route policy already
// restricts this operation to admins; the role check here is a second,
// independent line of defense.
func (s *AuthService) SwitchRole(ctx context.Context, acting domain.Principal, targetID string) (*domain.User, error) {
	if !acting.HasRole(domain.RoleAdmin) {
		s.log.Warn().
			Str("username", acting.Username).
			Str("role", acting.Role).
			Msg("role switch rejected: acting user is not admin")
		return nil, domain.ErrAccessDenied
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateRole(ctx, target.ID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("by", acting.Username).
		Str("target", updated.Username).
		Msg("user promoted to admin")
	return updated, nil
}

func (s *AuthService) signUp(ctx context.Context, username, password, nickname, role string) (*domain.User, error) {
	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUserExists
	}
	return s.create(ctx, username, password, nickname, role)
}

func (s *AuthService) create(ctx context.Context, username, password, nickname, role string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Nickname:     nickname,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", created.Role).Msg("user created")
	return created, nil
}
