package repository

import "github.com/yourusername/classboard-api/internal/domain/entity"

// StudentRepository определяет методы для работы с учениками
type StudentRepository interface {
	Create(student *entity.Student) error
	CreateBatch(students []entity.Student) error
	GetByID(id uint) (*entity.Student, error)
	// ListByClass возвращает всех учеников класса, включая неактивных
	ListByClass(classID uint) ([]entity.Student, error)
	ListActiveByClass(classID uint) ([]entity.Student, error)
	Update(student *entity.Student) error
}
