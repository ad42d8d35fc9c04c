package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// TestCategoryRepo реализует repository.TestCategoryRepository
type TestCategoryRepo struct {
	db *gorm.DB
}

// NewTestCategoryRepo создает новый репозиторий категорий контрольных
func NewTestCategoryRepo(db *gorm.DB) *TestCategoryRepo {
	return &TestCategoryRepo{db: db}
}

// Create создает новую категорию
func (r *TestCategoryRepo) Create(category *entity.TestCategory) error {
	return r.db.Create(category).Error
}

// GetByID возвращает категорию по ID
func (r *TestCategoryRepo) GetByID(id uint) (*entity.TestCategory, error) {
	var category entity.TestCategory
	err := r.db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// ListByClass возвращает категории класса, новые первыми
func (r *TestCategoryRepo) ListByClass(classID uint) ([]entity.TestCategory, error) {
	var categories []entity.TestCategory
	err := r.db.Where("class_id = ?", classID).Order("created_at DESC").Find(&categories).Error
	return categories, err
}

// Update обновляет категорию
func (r *TestCategoryRepo) Update(category *entity.TestCategory) error {
	return r.db.Save(category).Error
}

// Delete удаляет категорию, отвязывая от нее работы
func (r *TestCategoryRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.TestItem{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.TestCategory{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// TestRepo реализует repository.TestRepository
type TestRepo struct {
	db *gorm.DB
}

// NewTestRepo создает новый репозиторий загруженных контрольных
func NewTestRepo(db *gorm.DB) *TestRepo {
	return &TestRepo{db: db}
}

// Create создает новую работу
func (r *TestRepo) Create(test *entity.TestItem) error {
	return r.db.Create(test).Error
}

// GetByID возвращает работу по ID
func (r *TestRepo) GetByID(id uint) (*entity.TestItem, error) {
	var test entity.TestItem
	err := r.db.First(&test, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &test, nil
}

// ListByClass возвращает работы класса, новые первыми
func (r *TestRepo) ListByClass(classID uint) ([]entity.TestItem, error) {
	var tests []entity.TestItem
	err := r.db.Where("class_id = ?", classID).Order("uploaded_at DESC").Find(&tests).Error
	return tests, err
}

// Update обновляет работу
func (r *TestRepo) Update(test *entity.TestItem) error {
	return r.db.Save(test).Error
}

// Delete удаляет работу
func (r *TestRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.TestItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
