package ports

import (
	"context"

	"github.com/securecontent/workspace-api/internal/core/domain"
)

// ListArticlesInput carries the (already syntax-validated) list parameters.
// Zero Page and Limit take the documented defaults.
type ListArticlesInput struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// Pagination is the metadata block returned alongside every article page.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ArticleList is the result of the list operation.
type ArticleList struct {
	Articles   []*domain.Article `json:"articles"`
	Pagination Pagination        `json:"pagination"`
}

// CreateArticleInput carries the fields for creating an article. AuthorID is
// always the authenticated principal's id, never client-supplied.
type CreateArticleInput struct {
	Title    string
	Content  string
	ImageURL string
	Status   string
	AuthorID string
}

// UpdateArticleInput describes a partial update; nil fields are not touched.
type UpdateArticleInput struct {
	Title    *string
	Content  *string
	Status   *string
	ImageURL *string
}

// ArticleService defines the article use cases. Update and Delete receive
// the acting principal's identity because their authorization rules depend
// on it.
type ArticleService interface {
	List(ctx context.Context, in ListArticlesInput) (*ArticleList, error)
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	Create(ctx context.Context, in CreateArticleInput) (*domain.Article, error)
	Update(ctx context.Context, id, actorID, actorRole string, in UpdateArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, id, actorRole string) error
}
