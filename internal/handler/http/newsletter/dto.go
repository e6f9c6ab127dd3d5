// Package newsletter provides HTTP handlers for newsletter endpoints:
// drafting, editing, deletion, listings and the follower feed.
package newsletter

import (
	"time"

	"newsroom/internal/domain/entity"
)

// AuthorDTO is the public part of a newsletter's author.
type AuthorDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Image string `json:"image,omitempty"`
}

// DTO represents the JSON structure for newsletter data transfer.
type DTO struct {
	ID           string     `json:"id" example:"6a1f0c1e-8b8e-4a4e-9c61-5d3c2f1b7a90"`
	Title        string     `json:"title" example:"Weekly Go digest"`
	Subtitle     string     `json:"subtitle,omitempty"`
	Content      string     `json:"content" example:"<p>This week in Go...</p>"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	Category     *string    `json:"category" example:"Technology"`
	Published    bool       `json:"published"`
	ScheduledFor *time.Time `json:"scheduledFor"`
	AuthorID     string     `json:"authorId"`
	Author       *AuthorDTO `json:"author,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type createRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// updateRequest holds the editable fields; omitted fields are left unchanged.
type updateRequest struct {
	Title        *string    `json:"title"`
	Subtitle     *string    `json:"subtitle"`
	Content      *string    `json:"content"`
	Category     *string    `json:"category"`
	Published    *bool      `json:"published"`
	ScheduledFor *time.Time `json:"scheduledFor"`
	ImageURL     *string    `json:"imageUrl"`
}

type getResponse struct {
	Newsletter DTO `json:"newsletter"`
}

type updateResponse struct {
	Message    string `json:"message" example:"Newsletter updated successfully"`
	Newsletter DTO    `json:"newsletter"`
}

// ToDTO converts a newsletter; the author email is only exposed when withEmail is set.
func ToDTO(n *entity.Newsletter, withEmail bool) DTO {
	out := DTO{
		ID:           n.ID,
		Title:        n.Title,
		Subtitle:     n.Subtitle,
		Content:      n.Content,
		ImageURL:     n.Image,
		Published:    n.Published,
		ScheduledFor: n.ScheduledFor,
		AuthorID:     n.AuthorID,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
	if n.Category != nil {
		c := n.Category.String()
		out.Category = &c
	}
	if n.Author != nil {
		out.Author = &AuthorDTO{ID: n.Author.ID, Name: n.Author.Name, Image: n.Author.Image}
		if withEmail {
			out.Author.Email = n.Author.Email
		}
	}
	return out
}

func toDTOs(list []*entity.Newsletter, withEmail bool) []DTO {
	out := make([]DTO, 0, len(list))
	for _, n := range list {
		out = append(out, ToDTO(n, withEmail))
	}
	return out
}
