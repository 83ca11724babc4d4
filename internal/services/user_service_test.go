package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"weapondb/internal/models"
	"weapondb/internal/repositories"
)

func TestCreateUser(t *testing.T) {
	t.Run("hashes the password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "alice").Return(nil, repositories.ErrNotFound)
		mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

		user, err := service.CreateUser("alice", "hunter2!")

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEqual(t, "hunter2!", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter2!")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		existing := &models.User{ID: 1, Username: "alice"}
		mockRepo.On("GetByUsername", "alice").Return(existing, nil)

		user, err := service.CreateUser("alice", "hunter2!")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrUsernameTaken)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("blank password keeps the stored hash", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		originalHash := hashPassword(t, "original")
		stored := &models.User{ID: 3, Username: "alice", Password: originalHash}
		mockRepo.On("GetByID", uint(3)).Return(stored, nil)
		mockRepo.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return u.Username == "alice-renamed" && u.Password == originalHash
		})).Return(nil)

		err := service.UpdateUser(3, "alice-renamed", "")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("new password is rehashed", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		originalHash := hashPassword(t, "original")
		stored := &models.User{ID: 3, Username: "alice", Password: originalHash}
		mockRepo.On("GetByID", uint(3)).Return(stored, nil)
		mockRepo.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return u.Password != originalHash &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("fresh-pass")) == nil
		})).Return(nil)

		err := service.UpdateUser(3, "alice", "fresh-pass")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrNotFound)

		err := service.UpdateUser(99, "ghost", "")

		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
