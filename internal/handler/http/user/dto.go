// Package user provides HTTP handlers for profiles, discovery and the admin
// user directory.
package user

import (
	"time"

	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/newsletter"
)

// DTO is the public view of an account.
type DTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" example:"Alice"`
	Image      string    `json:"image,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	CustomLink string    `json:"customLink,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AdminDTO adds the fields only admins see.
type AdminDTO struct {
	DTO
	Email string `json:"email" example:"alice@example.com"`
	Role  string `json:"role" example:"USER"`
}

// DiscoverDTO is a discover listing row.
type DiscoverDTO struct {
	DTO
	FollowerCount   int  `json:"followerCount"`
	FollowingCount  int  `json:"followingCount"`
	NewsletterCount int  `json:"newsletterCount"`
	IsFollowing     bool `json:"isFollowing"`
}

// ProfileDTO is a user's public profile page.
type ProfileDTO struct {
	User           DTO              `json:"user"`
	FollowerCount  int              `json:"followerCount"`
	FollowingCount int              `json:"followingCount"`
	IsFollowing    bool             `json:"isFollowing"`
	Newsletters    []newsletter.DTO `json:"newsletters"`
}

type updateProfileRequest struct {
	Name       string `json:"name"`
	Bio        string `json:"bio"`
	CustomLink string `json:"customLink"`
}

type updateImageRequest struct {
	ImageURL string `json:"imageUrl"`
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

type updateProfileResponse struct {
	Message string `json:"message" example:"Profile updated successfully"`
	User    DTO    `json:"user"`
}

func toDTO(u *entity.User) DTO {
	return DTO{
		ID:         u.ID,
		Name:       u.Name,
		Image:      u.Image,
		Bio:        u.Bio,
		CustomLink: u.CustomLink,
		CreatedAt:  u.CreatedAt,
	}
}

func toAdminDTO(u *entity.User) AdminDTO {
	return AdminDTO{DTO: toDTO(u), Email: u.Email, Role: string(u.Role)}
}
