package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/classboard-api/internal/domain/entity"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
	"github.com/yourusername/classboard-api/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

// ============================================================================
// Моки для тестирования AuthService
// ============================================================================

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func newTestAuthService(userRepo *MockUserRepository) *AuthService {
	jwtService, err := auth.NewJWTService("test-secret-key", 1)
	if err != nil {
		panic(err)
	}
	return NewAuthService(userRepo, jwtService)
}

// ============================================================================
// Тесты для AuthService
// ============================================================================

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "new@example.com").Return(nil, apperrors.ErrNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	authService := newTestAuthService(mockUserRepo)

	// Act
	user, token, err := authService.Register("  New@Example.com ", "password123")

	// Assert: email нормализован, токен выдан
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.NotEmpty(t, token)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	existing := &entity.User{ID: 1, Email: "existing@example.com"}
	mockUserRepo.On("GetByEmail", "existing@example.com").Return(existing, nil)

	authService := newTestAuthService(mockUserRepo)

	// Act
	user, _, err := authService.Register("existing@example.com", "password123")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Nil(t, user)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Register_Validation(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	_, _, err := authService.Register("not-an-email", "password123")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, _, err = authService.Register("ok@example.com", "short")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAuthService_Login_ValidCredentials(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correctPassword"), bcrypt.DefaultCost)
	user := &entity.User{ID: 1, Email: "teacher@example.com", Password: string(hashed)}
	mockUserRepo.On("GetByEmail", "teacher@example.com").Return(user, nil)

	authService := newTestAuthService(mockUserRepo)

	// Act
	got, token, err := authService.Login("Teacher@Example.com", "correctPassword")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.ID)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correctPassword"), bcrypt.DefaultCost)
	user := &entity.User{ID: 1, Email: "teacher@example.com", Password: string(hashed)}
	mockUserRepo.On("GetByEmail", "teacher@example.com").Return(user, nil)

	authService := newTestAuthService(mockUserRepo)

	// Act
	_, _, err := authService.Login("teacher@example.com", "wrongPassword")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	// Несуществующий email дает ту же ошибку, что и неверный пароль
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	authService := newTestAuthService(mockUserRepo)

	_, _, err := authService.Login("ghost@example.com", "password123")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
