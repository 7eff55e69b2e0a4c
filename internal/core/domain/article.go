package domain

import "time"

// ArticleStatus represents the publication state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "DRAFT"
	StatusPublished ArticleStatus = "PUBLISHED"
)

// ValidStatus reports whether s is a known article status.
func ValidStatus(s ArticleStatus) bool {
	return s == StatusDraft || s == StatusPublished
}

// Article is a content unit owned by exactly one author. AuthorID is set at
// creation and never changes; Author is populated on reads with the author's
// non-secret projection.
type Article struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	ImageURL  string        `json:"imageUrl,omitempty"`
	Status    ArticleStatus `json:"status"`
	AuthorID  string        `json:"authorId"`
	Author    *Profile      `json:"author,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
