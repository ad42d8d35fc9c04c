package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	"github.com/yourusername/classboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// ClassService предоставляет методы для управления классами
type ClassService struct {
	classRepo  repository.ClassRepository
	accessServ *AccessService
}

// NewClassService создает новый сервис классов
func NewClassService(classRepo repository.ClassRepository, accessServ *AccessService) *ClassService {
	return &ClassService{
		classRepo:  classRepo,
		accessServ: accessServ,
	}
}

// List возвращает классы учителя
func (s *ClassService) List(ownerID uint) ([]entity.Class, error) {
	return s.classRepo.ListByOwner(ownerID)
}

// Get возвращает класс учителя по ID
func (s *ClassService) Get(ownerID, classID uint) (*entity.Class, error) {
	return s.classRepo.GetByIDForOwner(classID, ownerID)
}

// Create создает класс и сразу выпускает для него ссылку доступа учеников
func (s *ClassService) Create(ownerID uint, name, subject string) (*entity.Class, error) {
	name = strings.TrimSpace(name)
	subject = strings.TrimSpace(subject)
	if name == "" {
		return nil, fmt.Errorf("%w: class name is required", apperrors.ErrValidation)
	}

	class := &entity.Class{
		OwnerUserID: ownerID,
		Name:        name,
		Subject:     subject,
	}
	if err := s.classRepo.Create(class); err != nil {
		return nil, err
	}

	// Ссылка выпускается сразу, чтобы витрина класса работала с первого дня
	if _, err := s.accessServ.Rotate(ownerID, class.ID); err != nil {
		log.Printf("[ClassService] Failed to create access link for class %d: %v", class.ID, err)
	}
	return class, nil
}

// Update переименовывает класс или меняет предмет
func (s *ClassService) Update(ownerID, classID uint, name, subject string) (*entity.Class, error) {
	class, err := s.classRepo.GetByIDForOwner(classID, ownerID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: class name is required", apperrors.ErrValidation)
	}
	class.Name = name
	class.Subject = strings.TrimSpace(subject)

	if err := s.classRepo.Update(class); err != nil {
		return nil, err
	}
	return class, nil
}

// Delete удаляет класс учителя
func (s *ClassService) Delete(ownerID, classID uint) error {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return err
	}
	return s.classRepo.Delete(classID)
}
