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

// PostService предоставляет методы для ленты объявлений класса
type PostService struct {
	postRepo  repository.PostRepository
	classRepo repository.ClassRepository
	storage   FileStorage
}

// NewPostService создает новый сервис объявлений
func NewPostService(postRepo repository.PostRepository, classRepo repository.ClassRepository, storage FileStorage) *PostService {
	return &PostService{
		postRepo:  postRepo,
		classRepo: classRepo,
		storage:   storage,
	}
}

// List возвращает объявления класса, новые первыми
func (s *PostService) List(ownerID, classID uint) ([]entity.Post, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}
	return s.postRepo.ListByClass(classID)
}

// Create создает объявление в ленте класса
func (s *PostService) Create(ownerID, classID uint, author, content string, links []string) (*entity.Post, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: post content is required", apperrors.ErrValidation)
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = "Teacher"
	}

	cleaned := make(entity.StringArray, 0, len(links))
	for _, link := range links {
		if link = strings.TrimSpace(link); link != "" {
			cleaned = append(cleaned, link)
		}
	}

	post := &entity.Post{
		ClassID: classID,
		Author:  author,
		Content: content,
		Links:   cleaned,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// SaveWhiteboard сохраняет снимок доски и публикует его в ленте класса
func (s *PostService) SaveWhiteboard(ownerID, classID uint, file *multipart.FileHeader) (*entity.Post, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("%w: a whiteboard image is required", apperrors.ErrValidation)
	}

	storedName, err := s.storage.Save(file)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		ClassID: classID,
		Author:  "Whiteboard",
		Content: "Whiteboard snapshot",
		Links:   entity.StringArray{s.storage.PublicURL(storedName)},
	}
	if err := s.postRepo.Create(post); err != nil {
		if delErr := s.storage.Delete(storedName); delErr != nil {
			log.Printf("[PostService] Failed to clean up whiteboard file %s: %v", storedName, delErr)
		}
		return nil, err
	}
	return post, nil
}

// Delete удаляет объявление из ленты класса
func (s *PostService) Delete(ownerID, postID uint) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if _, err := s.classRepo.GetByIDForOwner(post.ClassID, ownerID); err != nil {
		return err
	}
	return s.postRepo.Delete(postID)
}
