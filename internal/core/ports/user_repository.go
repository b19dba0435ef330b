package ports

import (
	"context"

	"github.com/identity-core/auth-service/internal/core/domain"
)

// UserRepository defines the interface for user persistence. Username
// uniqueness is enforced by the store; Create must translate duplicate-key
// failures to domain.ErrUserExists.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
}
