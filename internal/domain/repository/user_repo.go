package repository

import "github.com/yourusername/classboard-api/internal/domain/entity"

// UserRepository определяет методы для работы с учителями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
