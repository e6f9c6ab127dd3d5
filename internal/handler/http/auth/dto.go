package auth

import (
	"time"

	"newsroom/internal/domain/entity"
)

type signInRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"correct-horse-battery"`
}

// UserDTO is the signed-in user as returned by sign-in and /me.
type UserDTO struct {
	ID         string    `json:"id" example:"0b6f7c2e-3f5b-4a44-9d0e-1c7b9f3e2a10"`
	Name       string    `json:"name" example:"Alice"`
	Email      string    `json:"email" example:"alice@example.com"`
	Image      string    `json:"image,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	CustomLink string    `json:"customLink,omitempty"`
	Role       string    `json:"role" example:"USER"`
	CreatedAt  time.Time `json:"createdAt"`
}

type signInResponse struct {
	Message string  `json:"message" example:"Signed in successfully"`
	User    UserDTO `json:"user"`
}

func toUserDTO(u *entity.User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Image:      u.Image,
		Bio:        u.Bio,
		CustomLink: u.CustomLink,
		Role:       string(u.Role),
		CreatedAt:  u.CreatedAt,
	}
}
