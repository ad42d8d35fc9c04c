package repository

import "github.com/yourusername/classboard-api/internal/domain/entity"

// TestCategoryRepository определяет методы для работы с категориями контрольных
type TestCategoryRepository interface {
	Create(category *entity.TestCategory) error
	GetByID(id uint) (*entity.TestCategory, error)
	// ListByClass возвращает категории класса, новые первыми
	ListByClass(classID uint) ([]entity.TestCategory, error)
	Update(category *entity.TestCategory) error
	// Delete удаляет категорию, отвязывая от нее работы
	Delete(id uint) error
}

// TestRepository определяет методы для работы с загруженными контрольными
type TestRepository interface {
	Create(test *entity.TestItem) error
	GetByID(id uint) (*entity.TestItem, error)
	// ListByClass возвращает работы класса, новые первыми
	ListByClass(classID uint) ([]entity.TestItem, error)
	Update(test *entity.TestItem) error
	Delete(id uint) error
}
