package repository

import "github.com/yourusername/classboard-api/internal/domain/entity"

// PostRepository определяет методы для работы с объявлениями
type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id uint) (*entity.Post, error)
	// ListByClass возвращает объявления класса, новые первыми
	ListByClass(classID uint) ([]entity.Post, error)
	Delete(id uint) error
}
