package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/securecontent/workspace-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth, which
// populates the role context key.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(RoleContextKey).(string)
			if _, ok := allowed[role]; !ok {
				return domain.E(domain.KindForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
