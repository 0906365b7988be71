package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/omercanga/cv-site/internal/domain"
)

// HomeRepository implements domain.HomeRepository using SQLite.
// The home_content table holds at most one row.
type HomeRepository struct {
	db *sql.DB
}

// NewHomeRepository creates a new SQLite-backed HomeRepository.
func NewHomeRepository(db *DB) *HomeRepository {
	return &HomeRepository{db: db.SqlDB}
}

func (r *HomeRepository) Get(ctx context.Context) (*domain.HomeContent, error) {
	content := &domain.HomeContent{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, subtitle, about, skills, experience, education, contact,
		 created_at, updated_at
		 FROM home_content LIMIT 1`,
	).Scan(&content.ID, &content.Title, &content.Subtitle, &content.About,
		&content.Skills, &content.Experience, &content.Education, &content.Contact,
		&content.CreatedAt, &content.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query home content: %w", err)
	}
	return content, nil
}

func (r *HomeRepository) Create(ctx context.Context, content *domain.HomeContent) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO home_content (title, subtitle, about, skills, experience, education, contact, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		content.Title, content.Subtitle, content.About, content.Skills,
		content.Experience, content.Education, content.Contact, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert home content: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	content.ID = id
	content.CreatedAt = now
	content.UpdatedAt = now
	return nil
}

func (r *HomeRepository) Update(ctx context.Context, content *domain.HomeContent) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE home_content SET title = ?, subtitle = ?, about = ?, skills = ?,
		 experience = ?, education = ?, contact = ?, updated_at = ?
		 WHERE id = ?`,
		content.Title, content.Subtitle, content.About, content.Skills,
		content.Experience, content.Education, content.Contact, now, content.ID,
	)
	if err != nil {
		return fmt.Errorf("update home content: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	content.UpdatedAt = now
	return nil
}
