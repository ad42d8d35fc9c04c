package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// PostRepo реализует repository.PostRepository
type PostRepo struct {
	db *gorm.DB
}

// NewPostRepo создает новый репозиторий объявлений
func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db: db}
}

// Create создает новое объявление
func (r *PostRepo) Create(post *entity.Post) error {
	return r.db.Create(post).Error
}

// GetByID возвращает объявление по ID
func (r *PostRepo) GetByID(id uint) (*entity.Post, error) {
	var post entity.Post
	err := r.db.First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListByClass возвращает объявления класса, новые первыми
func (r *PostRepo) ListByClass(classID uint) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.Where("class_id = ?", classID).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// Delete удаляет объявление
func (r *PostRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
