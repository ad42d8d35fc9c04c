package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// AccessLinkRepo реализует repository.AccessLinkRepository
type AccessLinkRepo struct {
	db *gorm.DB
}

// NewAccessLinkRepo создает новый репозиторий ссылок доступа
func NewAccessLinkRepo(db *gorm.DB) *AccessLinkRepo {
	return &AccessLinkRepo{db: db}
}

// Create создает новую ссылку доступа
func (r *AccessLinkRepo) Create(link *entity.AccessLink) error {
	err := r.db.Create(link).Error
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetActiveByClass возвращает действующую ссылку класса
func (r *AccessLinkRepo) GetActiveByClass(classID uint) (*entity.AccessLink, error) {
	var link entity.AccessLink
	err := r.db.Where("class_id = ? AND is_active = ?", classID, true).
		Order("created_at DESC").First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// GetActiveByToken возвращает только действующую ссылку
func (r *AccessLinkRepo) GetActiveByToken(token string) (*entity.AccessLink, error) {
	var link entity.AccessLink
	err := r.db.Where("token = ? AND is_active = ?", token, true).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// DeactivateByClass гасит все действующие ссылки класса
func (r *AccessLinkRepo) DeactivateByClass(classID uint) error {
	return r.db.Model(&entity.AccessLink{}).
		Where("class_id = ? AND is_active = ?", classID, true).
		Update("is_active", false).Error
}
