package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	"github.com/yourusername/classboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

var validEventTypes = map[string]bool{
	entity.EventTypeGeneral:  true,
	entity.EventTypeTest:     true,
	entity.EventTypeHomework: true,
	entity.EventTypeTrip:     true,
}

// CalendarEventInput — параметры создания или обновления события
type CalendarEventInput struct {
	// ClassID == nil — общешкольное событие
	ClassID     *uint
	Title       string
	Description *string
	EventDate   time.Time
	EndDate     *time.Time
	AllDay      bool
	EventType   string
}

// CalendarService предоставляет методы для календаря учителя
type CalendarService struct {
	calendarRepo repository.CalendarRepository
	classRepo    repository.ClassRepository
}

// NewCalendarService создает новый сервис календаря
func NewCalendarService(calendarRepo repository.CalendarRepository, classRepo repository.ClassRepository) *CalendarService {
	return &CalendarService{
		calendarRepo: calendarRepo,
		classRepo:    classRepo,
	}
}

func (s *CalendarService) validate(ownerID uint, input *CalendarEventInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return fmt.Errorf("%w: event title is required", apperrors.ErrValidation)
	}
	if input.EventDate.IsZero() {
		return fmt.Errorf("%w: event date is required", apperrors.ErrValidation)
	}
	if input.EndDate != nil && input.EndDate.Before(input.EventDate) {
		return fmt.Errorf("%w: end date cannot be before event date", apperrors.ErrValidation)
	}
	if input.EventType == "" {
		input.EventType = entity.EventTypeGeneral
	}
	if !validEventTypes[input.EventType] {
		return fmt.Errorf("%w: unknown event type %q", apperrors.ErrValidation, input.EventType)
	}
	if input.ClassID != nil {
		if _, err := s.classRepo.GetByIDForOwner(*input.ClassID, ownerID); err != nil {
			return err
		}
	}
	return nil
}

// List возвращает события по фильтрам; для класса сначала проверяется владение
func (s *CalendarService) List(ownerID uint, filters repository.CalendarFilters) ([]entity.CalendarEvent, error) {
	if filters.ClassID != nil {
		if _, err := s.classRepo.GetByIDForOwner(*filters.ClassID, ownerID); err != nil {
			return nil, err
		}
	}
	return s.calendarRepo.List(filters)
}

// Create создает событие календаря
func (s *CalendarService) Create(ownerID uint, input CalendarEventInput) (*entity.CalendarEvent, error) {
	if err := s.validate(ownerID, &input); err != nil {
		return nil, err
	}

	event := &entity.CalendarEvent{
		ClassID:     input.ClassID,
		Title:       input.Title,
		Description: input.Description,
		EventDate:   input.EventDate,
		EndDate:     input.EndDate,
		AllDay:      input.AllDay,
		EventType:   input.EventType,
	}
	if err := s.calendarRepo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update перезаписывает событие календаря
func (s *CalendarService) Update(ownerID, eventID uint, input CalendarEventInput) (*entity.CalendarEvent, error) {
	event, err := s.calendarRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event.ClassID != nil {
		if _, err := s.classRepo.GetByIDForOwner(*event.ClassID, ownerID); err != nil {
			return nil, err
		}
	}
	if err := s.validate(ownerID, &input); err != nil {
		return nil, err
	}

	event.ClassID = input.ClassID
	event.Title = input.Title
	event.Description = input.Description
	event.EventDate = input.EventDate
	event.EndDate = input.EndDate
	event.AllDay = input.AllDay
	event.EventType = input.EventType

	if err := s.calendarRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete удаляет событие календаря
func (s *CalendarService) Delete(ownerID, eventID uint) error {
	event, err := s.calendarRepo.GetByID(eventID)
	if err != nil {
		return err
	}
	if event.ClassID != nil {
		if _, err := s.classRepo.GetByIDForOwner(*event.ClassID, ownerID); err != nil {
			return err
		}
	}
	return s.calendarRepo.Delete(eventID)
}
