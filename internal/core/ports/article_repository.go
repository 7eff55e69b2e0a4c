package ports

import (
	"context"

	"github.com/securecontent/workspace-api/internal/core/domain"
)

// ListArticlesFilter carries the query parameters for listing articles.
// Page is 1-based; Limit is already clamped by the service layer.
type ListArticlesFilter struct {
	Status string // optional: exact status match
	Search string // optional: substring match on title or content (case-insensitive)
	Page   int
	Limit  int
}

// ArticleUpdate describes a partial update. Nil fields are left untouched.
type ArticleUpdate struct {
	Title    *string
	Content  *string
	Status   *string
	ImageURL *string
}

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	// List returns a page of articles ordered by creation time, newest
	// first, together with the total number of matching rows.
	List(ctx context.Context, filter ListArticlesFilter) ([]*domain.Article, int64, error)
	Update(ctx context.Context, id string, upd ArticleUpdate) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
}
