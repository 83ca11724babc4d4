package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"weapondb/internal/models"
	"weapondb/internal/repositories"
)

// ErrUsernameTaken is returned when creating a user with an existing username.
var ErrUsernameTaken = errors.New("username already taken")

// UserService handles business logic for account management.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers retrieves all user accounts.
func (s *UserService) ListUsers() ([]models.User, error) {
	return s.userRepo.List()
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// CreateUser registers a new account with a bcrypt-hashed password.
func (s *UserService) CreateUser(username, password string) (*models.User, error) {
	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, Password: string(hashed)}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser changes the username and, when a new password was
// submitted, rehashes and replaces the stored hash. An empty password
// keeps the existing one.
func (s *UserService) UpdateUser(id uint, username, password string) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}

	user.Username = username
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	return s.userRepo.Update(user)
}

// DeleteUser removes an account by ID.
func (s *UserService) DeleteUser(id uint) error {
	return s.userRepo.Delete(id)
}
