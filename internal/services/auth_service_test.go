package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"weapondb/internal/models"
	"weapondb/internal/repositories"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo, "test-secret")

		stored := &models.User{ID: 1, Username: "admin", Password: hashPassword(t, "Security!")}
		mockRepo.On("GetByUsername", "admin").Return(stored, nil)

		user, err := service.Login("admin", "Security!")

		assert.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.Equal(t, "admin", user.Username)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo, "test-secret")

		stored := &models.User{ID: 1, Username: "admin", Password: hashPassword(t, "Security!")}
		mockRepo.On("GetByUsername", "admin").Return(stored, nil)

		user, err := service.Login("admin", "wrong")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo, "test-secret")

		mockRepo.On("GetByUsername", "ghost").Return(nil, repositories.ErrNotFound)

		user, err := service.Login("ghost", "whatever")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo, "test-secret")

		stored := &models.User{ID: 1, Username: "admin", Password: hashPassword(t, "Security!")}
		mockRepo.On("GetByUsername", "admin").Return(stored, nil)
		mockRepo.On("GetByUsername", "ghost").Return(nil, repositories.ErrNotFound)

		_, errWrongPassword := service.Login("admin", "wrong")
		_, errUnknownUser := service.Login("ghost", "wrong")

		assert.Equal(t, errWrongPassword, errUnknownUser)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewAuthService(mockRepo, "test-secret")

	user := &models.User{ID: 7, Username: "admin"}
	tokenString, err := service.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := service.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "admin", claims["username"])
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	mockRepo := new(MockUserRepository)
	issuer := NewAuthService(mockRepo, "secret-a")
	verifier := NewAuthService(mockRepo, "secret-b")

	tokenString, err := issuer.GenerateToken(&models.User{ID: 1, Username: "admin"})
	assert.NoError(t, err)

	claims, err := verifier.ValidateToken(tokenString)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	service := NewAuthService(new(MockUserRepository), "test-secret")

	claims, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
