package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// StudentRepo реализует repository.StudentRepository
type StudentRepo struct {
	db *gorm.DB
}

// NewStudentRepo создает новый репозиторий учеников
func NewStudentRepo(db *gorm.DB) *StudentRepo {
	return &StudentRepo{db: db}
}

// Create создает нового ученика
func (r *StudentRepo) Create(student *entity.Student) error {
	return r.db.Create(student).Error
}

// CreateBatch создает пачку учеников одной транзакцией
func (r *StudentRepo) CreateBatch(students []entity.Student) error {
	if len(students) == 0 {
		return nil
	}
	return r.db.Create(&students).Error
}

// GetByID возвращает ученика по ID
func (r *StudentRepo) GetByID(id uint) (*entity.Student, error) {
	var student entity.Student
	err := r.db.First(&student, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// ListByClass возвращает всех учеников класса, включая неактивных
func (r *StudentRepo) ListByClass(classID uint) ([]entity.Student, error) {
	var students []entity.Student
	err := r.db.Where("class_id = ?", classID).Order("first_name ASC").Find(&students).Error
	return students, err
}

// ListActiveByClass возвращает только активных учеников класса
func (r *StudentRepo) ListActiveByClass(classID uint) ([]entity.Student, error) {
	var students []entity.Student
	err := r.db.Where("class_id = ? AND active = ?", classID, true).
		Order("first_name ASC").Find(&students).Error
	return students, err
}

// Update обновляет ученика
func (r *StudentRepo) Update(student *entity.Student) error {
	return r.db.Save(student).Error
}
