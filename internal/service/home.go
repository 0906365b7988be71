package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/omercanga/cv-site/internal/domain"
)

// HomeService manages the singleton home page content.
type HomeService struct {
	home domain.HomeRepository
}

// NewHomeService creates a new HomeService.
func NewHomeService(home domain.HomeRepository) *HomeService {
	return &HomeService{home: home}
}

// HomeInput carries the editable home page fields.
type HomeInput struct {
	Title      string
	Subtitle   string
	About      string
	Skills     string
	Experience string
	Education  string
	Contact    string
}

// Get returns the home content, creating placeholder defaults on first read
// so the public page is never empty.
func (s *HomeService) Get(ctx context.Context) (*domain.HomeContent, error) {
	content, err := s.home.Get(ctx)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	content = &domain.HomeContent{
		Title:      "Your Name",
		Subtitle:   "Full Stack Developer",
		About:      "A few words about yourself.",
		Skills:     "Your skills.",
		Experience: "Your work experience.",
		Education:  "Your education.",
		Contact:    "How to reach you.",
	}
	if err := s.home.Create(ctx, content); err != nil {
		return nil, fmt.Errorf("create default home content: %w", err)
	}
	return content, nil
}

// Update overwrites the home content. All fields are required.
func (s *HomeService) Update(ctx context.Context, input HomeInput) (*domain.HomeContent, error) {
	if input.Title == "" || input.Subtitle == "" || input.About == "" ||
		input.Skills == "" || input.Experience == "" || input.Education == "" ||
		input.Contact == "" {
		return nil, fmt.Errorf("%w: all home content fields are required", domain.ErrInvalidInput)
	}

	content, err := s.home.Get(ctx)
	if err != nil {
		return nil, err
	}

	content.Title = input.Title
	content.Subtitle = input.Subtitle
	content.About = input.About
	content.Skills = input.Skills
	content.Experience = input.Experience
	content.Education = input.Education
	content.Contact = input.Contact

	if err := s.home.Update(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}
