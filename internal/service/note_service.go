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

// NoteService предоставляет методы для тем и конспектов класса
type NoteService struct {
	topicRepo repository.TopicRepository
	noteRepo  repository.NoteRepository
	classRepo repository.ClassRepository
	storage   FileStorage
}

// NewNoteService создает новый сервис конспектов
func NewNoteService(
	topicRepo repository.TopicRepository,
	noteRepo repository.NoteRepository,
	classRepo repository.ClassRepository,
	storage FileStorage,
) *NoteService {
	return &NoteService{
		topicRepo: topicRepo,
		noteRepo:  noteRepo,
		classRepo: classRepo,
		storage:   storage,
	}
}

// ListTopics возвращает темы класса указанного вида
func (s *NoteService) ListTopics(ownerID, classID uint, kind string) ([]entity.Topic, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}
	return s.topicRepo.ListByClassKind(classID, kind)
}

// CreateTopic создает тему указанного вида
func (s *NoteService) CreateTopic(ownerID, classID uint, name, kind string) (*entity.Topic, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: topic name is required", apperrors.ErrValidation)
	}
	if kind != entity.TopicKindNotes && kind != entity.TopicKindExam {
		return nil, fmt.Errorf("%w: topic kind must be %q or %q", apperrors.ErrValidation, entity.TopicKindNotes, entity.TopicKindExam)
	}

	topic := &entity.Topic{
		ClassID: classID,
		Name:    name,
		Kind:    kind,
	}
	if err := s.topicRepo.Create(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// DeleteTopic удаляет тему вместе с ее конспектами и их файлами
func (s *NoteService) DeleteTopic(ownerID, topicID uint) error {
	topic, err := s.topicRepo.GetByID(topicID)
	if err != nil {
		return err
	}
	if _, err := s.classRepo.GetByIDForOwner(topic.ClassID, ownerID); err != nil {
		return err
	}

	notes, err := s.noteRepo.ListByTopic(topicID)
	if err != nil {
		return err
	}
	if err := s.noteRepo.DeleteByTopic(topicID); err != nil {
		return err
	}
	for _, note := range notes {
		if err := s.storage.Delete(note.StoredPath); err != nil {
			log.Printf("[NoteService] Failed to delete file %s: %v", note.StoredPath, err)
		}
	}
	return s.topicRepo.Delete(topicID)
}

// ListNotes возвращает конспекты класса с темами указанного вида
func (s *NoteService) ListNotes(ownerID, classID uint, kind string) ([]repository.NoteWithTopic, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}
	return s.noteRepo.ListByClassKind(classID, kind)
}

// Upload сохраняет файл конспекта и привязывает его к теме
func (s *NoteService) Upload(ownerID, classID, topicID uint, file *multipart.FileHeader) (*entity.Note, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}
	topic, err := s.topicRepo.GetByID(topicID)
	if err != nil {
		return nil, err
	}
	if topic.ClassID != classID {
		return nil, fmt.Errorf("%w: topic does not belong to this class", apperrors.ErrValidation)
	}
	if file == nil {
		return nil, fmt.Errorf("%w: a file is required", apperrors.ErrValidation)
	}

	storedName, err := s.storage.Save(file)
	if err != nil {
		return nil, err
	}

	note := &entity.Note{
		ClassID:    classID,
		TopicID:    topicID,
		Filename:   file.Filename,
		StoredPath: storedName,
	}
	if err := s.noteRepo.Create(note); err != nil {
		if delErr := s.storage.Delete(storedName); delErr != nil {
			log.Printf("[NoteService] Failed to clean up file %s: %v", storedName, delErr)
		}
		return nil, err
	}
	return note, nil
}

// Delete удаляет конспект вместе с файлом
func (s *NoteService) Delete(ownerID, noteID uint) error {
	note, err := s.noteRepo.GetByID(noteID)
	if err != nil {
		return err
	}
	if _, err := s.classRepo.GetByIDForOwner(note.ClassID, ownerID); err != nil {
		return err
	}

	if err := s.noteRepo.Delete(noteID); err != nil {
		return err
	}
	if err := s.storage.Delete(note.StoredPath); err != nil {
		log.Printf("[NoteService] Failed to delete file %s: %v", note.StoredPath, err)
	}
	return nil
}

// FileURLByName возвращает публичный URL по сохраненному имени файла
func (s *NoteService) FileURLByName(storedName string) string {
	return s.storage.PublicURL(storedName)
}

// GetForRead возвращает конспект без проверки владения; используется
// витриной учеников, где доступ уже проверен по токену
func (s *NoteService) GetForRead(noteID uint) (*entity.Note, error) {
	return s.noteRepo.GetByID(noteID)
}
