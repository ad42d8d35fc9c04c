package repository

import "github.com/yourusername/classboard-api/internal/domain/entity"

// ClassRepository определяет методы для работы с классами
type ClassRepository interface {
	Create(class *entity.Class) error
	GetByID(id uint) (*entity.Class, error)
	// GetByIDForOwner возвращает класс только если он принадлежит ownerID
	GetByIDForOwner(id, ownerID uint) (*entity.Class, error)
	ListByOwner(ownerID uint) ([]entity.Class, error)
	Update(class *entity.Class) error
	Delete(id uint) error
}
