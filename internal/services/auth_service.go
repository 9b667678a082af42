package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/warbler-api/internal/constants"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDuplicateIdentity    = errors.New("username or email already exists")
	ErrUsernameRequired     = errors.New("username is required")
	ErrEmailRequired        = errors.New("email is required")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService hashes and verifies credentials and manages the account lifecycle.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	ImageURL string
}

// HashPassword derives a salted bcrypt hash of a raw password.
func HashPassword(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrFailedToHashPassword
	}
	return string(hashed), nil
}

// NewUser builds an unsaved user with the password already hashed.
func NewUser(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL == "" {
		imageURL = constants.DefaultImageURL
	}

	return &models.User{
		Username:       username,
		Email:          email,
		PasswordHash:   hashed,
		ImageURL:       imageURL,
		HeaderImageURL: constants.DefaultHeaderImageURL,
	}, nil
}

// Register creates a user. Username and email uniqueness is left to the
// store's constraints; a violation comes back as ErrDuplicateIdentity.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	user, err := NewUser(input)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Authenticate verifies credentials. A false result with a nil error means the
// credentials were wrong; an error means the lookup itself failed.
func (s *AuthService) Authenticate(input LoginInput) (*models.User, bool, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find user: %w", err)
	}

	if !checkPassword(user.PasswordHash, input.Password) {
		return nil, false, nil
	}

	return user, true, nil
}

func checkPassword(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
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

// UpdateProfileInput holds profile edits. Password must be the user's current password.
type UpdateProfileInput struct {
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
	Password       string
}

// UpdateProfile applies profile edits after re-checking the current password.
func (s *AuthService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if !checkPassword(user.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	user.Username = username
	user.Email = email
	user.ImageURL = orDefault(input.ImageURL, constants.DefaultImageURL)
	user.HeaderImageURL = orDefault(input.HeaderImageURL, constants.DefaultHeaderImageURL)
	user.Bio = input.Bio
	user.Location = input.Location

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user with their messages, likes and follow edges.
func (s *AuthService) DeleteUser(userID uint64) error {
	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logrus.WithField("user_id", userID).Info("User deleted")
	return nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
