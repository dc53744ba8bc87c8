package dto

import (
	"time"

	"github.com/Lparksi/vikunja-1/internal/models"
)

// UserDTO represents a user in API responses. It is the public shape: no
// email, no flags.
type UserDTO struct {
	ID             uint64    `json:"id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	AvatarProvider string    `json:"avatar_provider"`
	AvatarFileID   *uint64   `json:"avatar_file_id"`
	CreatedAt      time.Time `json:"created"`
	UpdatedAt      time.Time `json:"updated"`
}

// UserDetailDTO is the caller's own account, including private fields.
type UserDetailDTO struct {
	UserDTO
	Email            string `json:"email"`
	Timezone         string `json:"timezone"`
	WeekStart        int    `json:"week_start"`
	Language         string `json:"language"`
	IsActive         bool   `json:"is_active"`
	IsAdmin          bool   `json:"is_admin"`
	IsEmailConfirmed bool   `json:"is_email_confirmed"`
	TOTPEnabled      bool   `json:"totp_enabled"`
}

// TokenResponse carries an issued JWT.
type TokenResponse struct {
	Token string `json:"token"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Username:       user.Username,
		Name:           user.Name,
		AvatarProvider: user.AvatarProvider,
		AvatarFileID:   user.AvatarFileID,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// ToUserDetailDTO converts a User model to the caller's own detailed view
func ToUserDetailDTO(user models.User) UserDetailDTO {
	return UserDetailDTO{
		UserDTO:          ToUserDTO(user),
		Email:            user.Email,
		Timezone:         user.Timezone,
		WeekStart:        user.WeekStart,
		Language:         user.Language,
		IsActive:         user.IsActive,
		IsAdmin:          user.IsAdmin,
		IsEmailConfirmed: user.IsEmailConfirmed,
		TOTPEnabled:      user.TOTPEnabled,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
