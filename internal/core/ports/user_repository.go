package ports

import (
	"context"

	"github.com/securecontent/workspace-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create persists a new user. Fails with domain.ErrEmailTaken when the
	// email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail looks a user up by email, case as persisted.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users matching ids in one query; missing ids are
	// silently skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
}
