package ports

import (
	"context"

	"github.com/identity-core/auth-service/internal/core/domain"
)

type AuthService interface {
	SignUp(ctx context.Context, username, password, nickname string) (*domain.User, error)
	AdminSignUp(ctx context.Context, username, password, nickname, adminKey string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	SwitchRole(ctx context.Context, acting domain.Principal, targetID string) (*domain.User, error)
}
