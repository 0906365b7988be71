package domain

import (
	"context"
	"time"
)

// Post is a blog entry. Slug is the public URL key and must be unique.
type Post struct {
	ID            int64
	Title         string
	Content       string
	Excerpt       string
	Slug          string
	FeaturedImage string
	Tags          []string
	AuthorID      *int64
	Status        string
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// PostRepository defines persistence operations for blog posts.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context) ([]Post, error)
	ListRecent(ctx context.Context, limit int) ([]Post, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id int64) error
}
