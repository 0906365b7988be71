package domain

import (
	"context"
	"time"
)

// HomeContent is the editable profile text shown on the public landing page.
// The table holds at most one row.
type HomeContent struct {
	ID         int64
	Title      string
	Subtitle   string
	About      string
	Skills     string
	Experience string
	Education  string
	Contact    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HomeRepository defines persistence operations for the singleton home content.
type HomeRepository interface {
	Get(ctx context.Context) (*HomeContent, error)
	Create(ctx context.Context, content *HomeContent) error
	Update(ctx context.Context, content *HomeContent) error
}
