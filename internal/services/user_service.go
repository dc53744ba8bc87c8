package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Lparksi/vikunja-1/internal/models"
	"github.com/Lparksi/vikunja-1/internal/repository"
)

var ErrEmailTaken = errors.New("email already in use")

// UserService provides self-service user operations.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateUserInput carries a sparse self-update. Nil means the field was not
// part of the request and stays untouched.
type UpdateUserInput struct {
	Name      *string
	Email     *string
	Timezone  *string
	WeekStart *int
	Language  *string
}

// UpdateUser applies only the fields present in the input.
func (s *UserService) UpdateUser(userID uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByUsernameOrEmail("", *input.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.Timezone != nil {
		user.Timezone = *input.Timezone
	}
	if input.WeekStart != nil {
		user.WeekStart = *input.WeekStart
	}
	if input.Language != nil {
		user.Language = *input.Language
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// ListUsers returns all active users.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
