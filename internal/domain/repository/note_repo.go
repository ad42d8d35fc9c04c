package repository

import "github.com/yourusername/classboard-api/internal/domain/entity"

// TopicRepository определяет методы для работы с темами материалов
type TopicRepository interface {
	Create(topic *entity.Topic) error
	GetByID(id uint) (*entity.Topic, error)
	// ListByClassKind возвращает темы класса указанного вида, по имени
	ListByClassKind(classID uint, kind string) ([]entity.Topic, error)
	Delete(id uint) error
}

// NoteWithTopic — конспект вместе с его темой
type NoteWithTopic struct {
	Note  entity.Note
	Topic entity.Topic
}

// NoteRepository определяет методы для работы с конспектами
type NoteRepository interface {
	Create(note *entity.Note) error
	GetByID(id uint) (*entity.Note, error)
	// ListByClassKind возвращает конспекты класса с темами указанного вида, новые первыми
	ListByClassKind(classID uint, kind string) ([]NoteWithTopic, error)
	ListByClass(classID uint) ([]entity.Note, error)
	ListByTopic(topicID uint) ([]entity.Note, error)
	Delete(id uint) error
	DeleteByTopic(topicID uint) error
}
