package handler

import (
	"github.com/identity-core/auth-service/internal/core/domain"
)

// toUserResponse maps a domain user onto the wire shape. Roles are rendered
// as a list even though an account holds exactly one role today.
func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		Username: u.Username,
		Nickname: u.Nickname,
		Roles:    []roleResponse{{Role: u.Role}},
	}
}
