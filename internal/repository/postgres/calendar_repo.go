package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	"github.com/yourusername/classboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// CalendarRepo реализует repository.CalendarRepository
type CalendarRepo struct {
	db *gorm.DB
}

// NewCalendarRepo создает новый репозиторий календаря
func NewCalendarRepo(db *gorm.DB) *CalendarRepo {
	return &CalendarRepo{db: db}
}

// Create создает новое событие
func (r *CalendarRepo) Create(event *entity.CalendarEvent) error {
	return r.db.Create(event).Error
}

// GetByID возвращает событие по ID
func (r *CalendarRepo) GetByID(id uint) (*entity.CalendarEvent, error) {
	var event entity.CalendarEvent
	err := r.db.First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// List возвращает события по фильтрам, в порядке дат
func (r *CalendarRepo) List(filters repository.CalendarFilters) ([]entity.CalendarEvent, error) {
	query := r.db.Model(&entity.CalendarEvent{})

	if filters.GlobalOnly {
		query = query.Where("class_id IS NULL")
	} else if filters.ClassID != nil {
		query = query.Where("class_id = ? OR class_id IS NULL", *filters.ClassID)
	}

	var events []entity.CalendarEvent
	err := query.Order("event_date ASC, id ASC").Find(&events).Error
	return events, err
}

// ListByClass возвращает события, привязанные строго к классу
func (r *CalendarRepo) ListByClass(classID uint) ([]entity.CalendarEvent, error) {
	var events []entity.CalendarEvent
	err := r.db.Where("class_id = ?", classID).
		Order("event_date ASC, id ASC").Find(&events).Error
	return events, err
}

// Update обновляет событие
func (r *CalendarRepo) Update(event *entity.CalendarEvent) error {
	return r.db.Save(event).Error
}

// Delete удаляет событие
func (r *CalendarRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.CalendarEvent{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
