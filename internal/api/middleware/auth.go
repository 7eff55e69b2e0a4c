package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/securecontent/workspace-api/internal/core/domain"
	"github.com/securecontent/workspace-api/internal/core/ports"
	"github.com/securecontent/workspace-api/internal/pkg/credentials"
)

// Context keys populated by Auth for downstream handlers and middleware.
const (
	UserContextKey = "user"
	RoleContextKey = "role"
)

// Auth validates the bearer token and loads the referenced user. The full
// principal (non-secret projection only) is attached to the request
// context, so a token whose user has been removed is rejected even though
// its signature is still valid.
func Auth(tokens *credentials.TokenCodec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.E(domain.KindUnauthenticated, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.E(domain.KindUnauthenticated, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return err
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return domain.E(domain.KindUnauthenticated, "invalid token: user not found")
				}
				return err
			}

			c.Set(UserContextKey, user.Profile())
			c.Set(RoleContextKey, user.Role)

			return next(c)
		}
	}
}
