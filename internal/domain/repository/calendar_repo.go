package repository

import "github.com/yourusername/classboard-api/internal/domain/entity"

// CalendarFilters — фильтры выборки событий календаря
type CalendarFilters struct {
	// ClassID != nil — события класса плюс общешкольные
	ClassID *uint
	// GlobalOnly — только общешкольные события (class_id IS NULL)
	GlobalOnly bool
}

// CalendarRepository определяет методы для работы с календарем
type CalendarRepository interface {
	Create(event *entity.CalendarEvent) error
	GetByID(id uint) (*entity.CalendarEvent, error)
	List(filters CalendarFilters) ([]entity.CalendarEvent, error)
	// ListByClass возвращает события, привязанные строго к классу
	ListByClass(classID uint) ([]entity.CalendarEvent, error)
	Update(event *entity.CalendarEvent) error
	Delete(id uint) error
}
