package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// ClassRepo реализует repository.ClassRepository
type ClassRepo struct {
	db *gorm.DB
}

// NewClassRepo создает новый репозиторий классов
func NewClassRepo(db *gorm.DB) *ClassRepo {
	return &ClassRepo{db: db}
}

// Create создает новый класс
func (r *ClassRepo) Create(class *entity.Class) error {
	return r.db.Create(class).Error
}

// GetByID возвращает класс по ID
func (r *ClassRepo) GetByID(id uint) (*entity.Class, error) {
	var class entity.Class
	err := r.db.First(&class, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &class, nil
}

// GetByIDForOwner возвращает класс только если он принадлежит ownerID
func (r *ClassRepo) GetByIDForOwner(id, ownerID uint) (*entity.Class, error) {
	var class entity.Class
	err := r.db.Where("id = ? AND owner_user_id = ?", id, ownerID).First(&class).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &class, nil
}

// ListByOwner возвращает все классы учителя
func (r *ClassRepo) ListByOwner(ownerID uint) ([]entity.Class, error) {
	var classes []entity.Class
	err := r.db.Where("owner_user_id = ?", ownerID).Order("created_at DESC").Find(&classes).Error
	return classes, err
}

// Update обновляет класс
func (r *ClassRepo) Update(class *entity.Class) error {
	return r.db.Save(class).Error
}

// Delete удаляет класс
func (r *ClassRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Class{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
