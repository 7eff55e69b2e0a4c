package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/securecontent/workspace-api/internal/core/domain"
)

func rbacContext(role string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(RoleContextKey, role)
	}
	return c
}

func TestRBAC_Allows(t *testing.T) {
	called := false
	handler := RBAC(domain.RoleAdmin, domain.RoleEditor)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(rbacContext(domain.RoleEditor)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRBAC_Forbids(t *testing.T) {
	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(rbacContext(domain.RoleViewer))
	var appErr *domain.Error
	if !errors.As(err, &appErr) || appErr.Kind != domain.KindForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestRBAC_ForbidsWithoutRole(t *testing.T) {
	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(rbacContext(""))
	var appErr *domain.Error
	if !errors.As(err, &appErr) || appErr.Kind != domain.KindForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}
