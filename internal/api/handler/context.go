package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/securecontent/workspace-api/internal/api/middleware"
	"github.com/securecontent/workspace-api/internal/core/domain"
)

// currentUser extracts the principal injected by the Auth middleware. Its
// presence proves the middleware ran; a protected route reached without it
// is a wiring bug surfaced as 401, never a silent pass-through.
func currentUser(c echo.Context) (domain.Profile, error) {
	user, ok := c.Get(middleware.UserContextKey).(domain.Profile)
	if !ok || user.ID == "" {
		return domain.Profile{}, domain.E(domain.KindUnauthenticated, "missing authentication claims")
	}
	return user, nil
}
