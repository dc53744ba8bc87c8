package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Lparksi/vikunja-1/internal/auth"
	"github.com/Lparksi/vikunja-1/internal/constants"
	"github.com/Lparksi/vikunja-1/internal/models"
	"github.com/Lparksi/vikunja-1/internal/repository"
)

var (
	ErrUserExists           = errors.New("username or email already registered")
	ErrInvalidCredentials   = errors.New("incorrect username or password")
	ErrUserInactive         = errors.New("inactive user")
	ErrUserNotFound         = errors.New("user not found")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrRegistrationDisabled = errors.New("registration is disabled")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// dummyHash keeps login timing flat when the user lookup misses.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService handles registration, credential verification and token
// issuance.
type AuthService struct {
	userRepo            repository.UserRepository
	tokens              *auth.TokenService
	registrationEnabled bool
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService, registrationEnabled bool) *AuthService {
	return &AuthService{
		userRepo:            userRepo,
		tokens:              tokens,
		registrationEnabled: registrationEnabled,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Name      string
	Timezone  string
	WeekStart int
	Language  string
}

// Register creates a new user. The first user in an empty table becomes
// admin.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	if !s.registrationEnabled {
		return nil, ErrRegistrationDisabled
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(username, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	count, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Timezone:     input.Timezone,
		WeekStart:    input.WeekStart,
		Language:     input.Language,
		IsActive:     true,
		IsAdmin:      count == 0,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication. Login matches either
// username or email.
type LoginInput struct {
	Username  string
	Password  string
	LongToken bool
}

// Login verifies credentials and returns a signed bearer token.
func (s *AuthService) Login(input LoginInput) (string, error) {
	user, err := s.userRepo.FindByUsernameOrEmail(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			auth.VerifyPassword(input.Password, dummyHash)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if !auth.VerifyPassword(input.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", ErrUserInactive
	}

	token, err := s.tokens.Issue(user, input.LongToken)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
