package handler

import (
	"time"

	"github.com/omercanga/cv-site/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash is never
// serialized.
type UserDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

func toUserDTOs(users []domain.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	return dtos
}

// PostDTO is the JSON representation of a blog post.
type PostDTO struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Slug          string   `json:"slug"`
	FeaturedImage string   `json:"featuredImage"`
	Tags          []string `json:"tags"`
	AuthorID      *int64   `json:"authorId"`
	Status        string   `json:"status"`
	PublishedAt   *string  `json:"publishedAt"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

func toPostDTO(p *domain.Post) PostDTO {
	dto := PostDTO{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		Slug:          p.Slug,
		FeaturedImage: p.FeaturedImage,
		Tags:          p.Tags,
		AuthorID:      p.AuthorID,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Tags == nil {
		dto.Tags = []string{}
	}
	if p.PublishedAt != nil {
		t := p.PublishedAt.Format(time.RFC3339)
		dto.PublishedAt = &t
	}
	return dto
}

func toPostDTOs(posts []domain.Post) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i := range posts {
		dtos[i] = toPostDTO(&posts[i])
	}
	return dtos
}

// HomeDTO is the JSON representation of the home page content.
type HomeDTO struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	About      string `json:"about"`
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Contact    string `json:"contact"`
	UpdatedAt  string `json:"updatedAt"`
}

func toHomeDTO(c *domain.HomeContent) HomeDTO {
	return HomeDTO{
		ID:         c.ID,
		Title:      c.Title,
		Subtitle:   c.Subtitle,
		About:      c.About,
		Skills:     c.Skills,
		Experience: c.Experience,
		Education:  c.Education,
		Contact:    c.Contact,
		UpdatedAt:  c.UpdatedAt.Format(time.RFC3339),
	}
}
