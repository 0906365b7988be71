package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/omercanga/cv-site/internal/domain"
)

// PostService implements blog post CRUD.
type PostService struct {
	posts domain.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// PostInput carries the editable fields of a blog post.
type PostInput struct {
	Title         string
	Content       string
	Excerpt       string
	Slug          string
	FeaturedImage string
	Tags          []string
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

// Recent returns the most recent posts, up to limit.
func (s *PostService) Recent(ctx context.Context, limit int) ([]domain.Post, error) {
	return s.posts.ListRecent(ctx, limit)
}

// Count returns the total number of posts.
func (s *PostService) Count(ctx context.Context) (int, error) {
	return s.posts.Count(ctx)
}

// GetByID retrieves a post by its ID.
func (s *PostService) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// GetBySlug retrieves a post by its public slug.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return s.posts.GetBySlug(ctx, slug)
}

// Create publishes a new post. An empty excerpt is derived from the content.
func (s *PostService) Create(ctx context.Context, authorID int64, input PostInput) (*domain.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Title:         input.Title,
		Content:       input.Content,
		Excerpt:       excerptOrDerive(input.Excerpt, input.Content),
		Slug:          input.Slug,
		FeaturedImage: input.FeaturedImage,
		Tags:          input.Tags,
		AuthorID:      &authorID,
		Status:        domain.PostStatusPublished,
		PublishedAt:   &now,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update rewrites an existing post's editable fields.
func (s *PostService) Update(ctx context.Context, id int64, input PostInput) (*domain.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Content = input.Content
	post.Excerpt = excerptOrDerive(input.Excerpt, input.Content)
	post.Slug = input.Slug
	post.FeaturedImage = input.FeaturedImage
	post.Tags = input.Tags

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	return s.posts.Delete(ctx, id)
}

func validatePostInput(input PostInput) error {
	if input.Title == "" || input.Content == "" || input.Slug == "" {
		return fmt.Errorf("%w: title, content, and slug are required", domain.ErrInvalidInput)
	}
	return nil
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// excerptOrDerive returns the given excerpt, or builds one from the first
// 200 characters of the content with HTML tags stripped. Truncation counts
// runes, not bytes, so multi-byte content stays valid UTF-8.
func excerptOrDerive(excerpt, content string) string {
	if excerpt != "" {
		return excerpt
	}
	plain := htmlTagPattern.ReplaceAllString(content, "")
	plain = strings.TrimSpace(plain)
	runes := []rune(plain)
	if len(runes) <= 200 {
		return plain
	}
	return string(runes[:200]) + "..."
}
