package dto

import (
	"time"

	"github.com/yourusername/classboard-api/internal/domain/entity"
)

// UserResponse представляет профиль учителя в формате для ответа клиенту
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse представляет ответ на регистрацию или вход
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse создает DTO профиля из сущности
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// NewAuthResponse создает DTO с токеном и профилем
func NewAuthResponse(user *entity.User, token string) AuthResponse {
	return AuthResponse{
		Token: token,
		User:  NewUserResponse(user),
	}
}
