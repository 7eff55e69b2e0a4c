package ports

import (
	"context"

	"github.com/securecontent/workspace-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration. Role is
// optional; an empty value defaults to VIEWER.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// AuthResult pairs the user's non-secret projection with a freshly issued
// bearer token.
type AuthResult struct {
	User  domain.Profile `json:"user"`
	Token string         `json:"token"`
}

// AuthService defines the registration and login use cases.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
