package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/identity-core/auth-service/internal/core/domain"
)

// RequireRoles enforces a declarative allow-list of roles on the routes it
// wraps. Fail-closed: an empty allow-list denies every principal, and a
// request that never passed the Auth middleware is rejected as having no
// valid token. Role comparison is case-insensitive.
func RequireRoles(allowed ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return domain.ErrInvalidToken
			}
			if !p.HasRole(allowed...) {
				return domain.ErrAccessDenied
			}
			return next(c)
		}
	}
}
