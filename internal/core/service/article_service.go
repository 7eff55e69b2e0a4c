package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/securecontent/workspace-api/internal/api/metrics"
	"github.com/securecontent/workspace-api/internal/core/domain"
	"github.com/securecontent/workspace-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	defaultMaxLimit  = 100
)

// ArticleService implements the article use cases. Author projections are
// joined in from the user repository on every read.
type ArticleService struct {
	articles ports.ArticleRepository
	users    ports.UserRepository
	maxLimit int
	log      zerolog.Logger
}

// NewArticleService builds a service. A non-positive maxLimit falls back to 100.
func NewArticleService(articles ports.ArticleRepository, users ports.UserRepository, maxLimit int, log zerolog.Logger) *ArticleService {
	if maxLimit <= 0 {
		maxLimit = defaultMaxLimit
	}
	return &ArticleService{articles: articles, users: users, maxLimit: maxLimit, log: log}
}

// List returns one page of articles, newest first, with embedded author
// projections and pagination metadata. Page is clamped to a minimum of 1;
// limit defaults to 10 and is clamped to the configured maximum.
func (s *ArticleService) List(ctx context.Context, in ports.ListArticlesInput) (*ports.ArticleList, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	items, total, err := s.articles.List(ctx, ports.ListArticlesFilter{
		Status: in.Status,
		Search: in.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	if err := s.embedAuthors(ctx, items); err != nil {
		return nil, err
	}
	if items == nil {
		// An empty page must marshal as [], never null.
		items = []*domain.Article{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.ArticleList{
		Articles: items,
		Pagination: ports.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetByID fetches one article with its author embedded.
func (s *ArticleService) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachAuthor(ctx, article)
	return article, nil
}

// Create persists a new article owned by in.AuthorID. Status defaults to
// DRAFT. The author reference is valid by construction: it is always the
// authenticated, freshly loaded principal.
func (s *ArticleService) Create(ctx context.Context, in ports.CreateArticleInput) (*domain.Article, error) {
	status := domain.ArticleStatus(in.Status)
	if status == "" {
		status = domain.StatusDraft
	}

	now := time.Now().UTC()
	article := &domain.Article{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		ImageURL:  in.ImageURL,
		Status:    status,
		AuthorID:  in.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.articles.Create(ctx, article)
	if err != nil {
		return nil, err
	}

	metrics.ArticlesCreatedTotal.WithLabelValues(string(created.Status)).Inc()
	s.log.Info().Str("article_id", created.ID).Str("author_id", created.AuthorID).Msg("article created")

	s.attachAuthor(ctx, created)
	return created, nil
}

// Update applies a partial update after enforcing the ownership-or-admin
// rule. The rule runs after the load because it depends on the stored
// author; only non-nil fields of in are written.
func (s *ArticleService) Update(ctx context.Context, id, actorID, actorRole string, in ports.UpdateArticleInput) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if article.AuthorID != actorID && actorRole != domain.RoleAdmin {
		return nil, domain.ErrNotArticleAuthor
	}

	updated, err := s.articles.Update(ctx, id, ports.ArticleUpdate{
		Title:    in.Title,
		Content:  in.Content,
		Status:   in.Status,
		ImageURL: in.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("article_id", id).Str("actor_id", actorID).Msg("article updated")

	s.attachAuthor(ctx, updated)
	return updated, nil
}

// Delete removes an article. The role gate runs before the existence check
// so a non-admin caller learns nothing about whether the id exists.
func (s *ArticleService) Delete(ctx context.Context, id, actorRole string) error {
	if actorRole != domain.RoleAdmin {
		return domain.ErrAdminOnly
	}

	if _, err := s.articles.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}

	metrics.ArticlesDeletedTotal.Inc()
	s.log.Info().Str("article_id", id).Msg("article deleted")
	return nil
}

// attachAuthor embeds the author's projection, leaving it nil when the
// author account no longer exists.
func (s *ArticleService) attachAuthor(ctx context.Context, article *domain.Article) {
	user, err := s.users.FindByID(ctx, article.AuthorID)
	if err != nil {
		return
	}
	profile := user.Profile()
	article.Author = &profile
}

// embedAuthors resolves the author projections for a page of articles with a
// single repository query.
func (s *ArticleService) embedAuthors(ctx context.Context, articles []*domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(articles))
	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		if _, ok := seen[a.AuthorID]; ok {
			continue
		}
		seen[a.AuthorID] = struct{}{}
		ids = append(ids, a.AuthorID)
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	profiles := make(map[string]domain.Profile, len(users))
	for _, u := range users {
		profiles[u.ID] = u.Profile()
	}
	for _, a := range articles {
		if p, ok := profiles[a.AuthorID]; ok {
			profile := p
			a.Author = &profile
		}
	}
	return nil
}
