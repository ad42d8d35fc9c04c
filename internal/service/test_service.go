package service

import (
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	"github.com/yourusername/classboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// TestService предоставляет методы для загруженных контрольных и их категорий
type TestService struct {
	categoryRepo repository.TestCategoryRepository
	testRepo     repository.TestRepository
	classRepo    repository.ClassRepository
	storage      FileStorage
}

// NewTestService создает новый сервис контрольных
func NewTestService(
	categoryRepo repository.TestCategoryRepository,
	testRepo repository.TestRepository,
	classRepo repository.ClassRepository,
	storage FileStorage,
) *TestService {
	return &TestService{
		categoryRepo: categoryRepo,
		testRepo:     testRepo,
		classRepo:    classRepo,
		storage:      storage,
	}
}

// ListCategories возвращает категории класса
func (s *TestService) ListCategories(ownerID, classID uint) ([]entity.TestCategory, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByClass(classID)
}

// CreateCategory создает категорию контрольных
func (s *TestService) CreateCategory(ownerID, classID uint, title string, description *string) (*entity.TestCategory, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: category title is required", apperrors.ErrValidation)
	}

	category := &entity.TestCategory{
		ClassID:     classID,
		Title:       title,
		Description: description,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory удаляет категорию; работы в ней остаются без категории
func (s *TestService) DeleteCategory(ownerID, categoryID uint) error {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if _, err := s.classRepo.GetByIDForOwner(category.ClassID, ownerID); err != nil {
		return err
	}
	return s.categoryRepo.Delete(categoryID)
}

// List возвращает работы класса, новые первыми
func (s *TestService) List(ownerID, classID uint) ([]entity.TestItem, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}
	return s.testRepo.ListByClass(classID)
}

// Upload сохраняет файл контрольной
func (s *TestService) Upload(ownerID, classID uint, categoryID *uint, title string, description *string, file *multipart.FileHeader) (*entity.TestItem, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("%w: a file is required", apperrors.ErrValidation)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = file.Filename
	}
	if categoryID != nil {
		category, err := s.categoryRepo.GetByID(*categoryID)
		if err != nil {
			return nil, err
		}
		if category.ClassID != classID {
			return nil, fmt.Errorf("%w: category does not belong to this class", apperrors.ErrValidation)
		}
	}

	storedName, err := s.storage.Save(file)
	if err != nil {
		return nil, err
	}

	test := &entity.TestItem{
		ClassID:     classID,
		CategoryID:  categoryID,
		Title:       title,
		Description: description,
		Filename:    file.Filename,
		StoredPath:  storedName,
	}
	if err := s.testRepo.Create(test); err != nil {
		if delErr := s.storage.Delete(storedName); delErr != nil {
			log.Printf("[TestService] Failed to clean up file %s: %v", storedName, delErr)
		}
		return nil, err
	}
	return test, nil
}

// Update меняет название, описание или категорию работы
func (s *TestService) Update(ownerID, testID uint, title *string, description *string, categoryID *uint, clearCategory bool) (*entity.TestItem, error) {
	test, err := s.testRepo.GetByID(testID)
	if err != nil {
		return nil, err
	}
	if _, err := s.classRepo.GetByIDForOwner(test.ClassID, ownerID); err != nil {
		return nil, err
	}

	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return nil, fmt.Errorf("%w: test title cannot be blank", apperrors.ErrValidation)
		}
		test.Title = t
	}
	if description != nil {
		test.Description = description
	}
	if clearCategory {
		test.CategoryID = nil
	} else if categoryID != nil {
		category, err := s.categoryRepo.GetByID(*categoryID)
		if err != nil {
			return nil, err
		}
		if category.ClassID != test.ClassID {
			return nil, fmt.Errorf("%w: category does not belong to this class", apperrors.ErrValidation)
		}
		test.CategoryID = categoryID
	}

	if err := s.testRepo.Update(test); err != nil {
		return nil, err
	}
	return test, nil
}

// Delete удаляет работу вместе с файлом
func (s *TestService) Delete(ownerID, testID uint) error {
	test, err := s.testRepo.GetByID(testID)
	if err != nil {
		return err
	}
	if _, err := s.classRepo.GetByIDForOwner(test.ClassID, ownerID); err != nil {
		return err
	}

	if err := s.testRepo.Delete(testID); err != nil {
		return err
	}
	if err := s.storage.Delete(test.StoredPath); err != nil {
		log.Printf("[TestService] Failed to delete file %s: %v", test.StoredPath, err)
	}
	return nil
}

// FileURLByName возвращает публичный URL по сохраненному имени файла
func (s *TestService) FileURLByName(storedName string) string {
	return s.storage.PublicURL(storedName)
}
