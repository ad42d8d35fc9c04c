package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	"github.com/yourusername/classboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// TopicRepo реализует repository.TopicRepository
type TopicRepo struct {
	db *gorm.DB
}

// NewTopicRepo создает новый репозиторий тем
func NewTopicRepo(db *gorm.DB) *TopicRepo {
	return &TopicRepo{db: db}
}

// Create создает новую тему
func (r *TopicRepo) Create(topic *entity.Topic) error {
	return r.db.Create(topic).Error
}

// GetByID возвращает тему по ID
func (r *TopicRepo) GetByID(id uint) (*entity.Topic, error) {
	var topic entity.Topic
	err := r.db.First(&topic, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &topic, nil
}

// ListByClassKind возвращает темы класса указанного вида, по имени
func (r *TopicRepo) ListByClassKind(classID uint, kind string) ([]entity.Topic, error) {
	var topics []entity.Topic
	err := r.db.Where("class_id = ? AND kind = ?", classID, kind).
		Order("name ASC").Find(&topics).Error
	return topics, err
}

// Delete удаляет тему
func (r *TopicRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Topic{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// NoteRepo реализует repository.NoteRepository
type NoteRepo struct {
	db *gorm.DB
}

// NewNoteRepo создает новый репозиторий конспектов
func NewNoteRepo(db *gorm.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

// Create создает новый конспект
func (r *NoteRepo) Create(note *entity.Note) error {
	return r.db.Create(note).Error
}

// GetByID возвращает конспект по ID
func (r *NoteRepo) GetByID(id uint) (*entity.Note, error) {
	var note entity.Note
	err := r.db.First(&note, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// ListByClassKind возвращает конспекты класса с темами указанного вида, новые первыми
func (r *NoteRepo) ListByClassKind(classID uint, kind string) ([]repository.NoteWithTopic, error) {
	type joinedRow struct {
		entity.Note
		TName string `gorm:"column:t_name"`
		TKind string `gorm:"column:t_kind"`
	}

	var raw []joinedRow
	err := r.db.Table("notes AS n").
		Select("n.*, t.name AS t_name, t.kind AS t_kind").
		Joins("JOIN topics t ON t.id = n.topic_id").
		Where("n.class_id = ? AND t.kind = ?", classID, kind).
		Order("n.uploaded_at DESC").
		Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	rows := make([]repository.NoteWithTopic, 0, len(raw))
	for _, jr := range raw {
		rows = append(rows, repository.NoteWithTopic{
			Note: jr.Note,
			Topic: entity.Topic{
				ID:      jr.TopicID,
				ClassID: jr.Note.ClassID,
				Name:    jr.TName,
				Kind:    jr.TKind,
			},
		})
	}
	return rows, nil
}

// ListByClass возвращает все конспекты класса, новые первыми
func (r *NoteRepo) ListByClass(classID uint) ([]entity.Note, error) {
	var notes []entity.Note
	err := r.db.Where("class_id = ?", classID).Order("uploaded_at DESC").Find(&notes).Error
	return notes, err
}

// ListByTopic возвращает конспекты темы, новые первыми
func (r *NoteRepo) ListByTopic(topicID uint) ([]entity.Note, error) {
	var notes []entity.Note
	err := r.db.Where("topic_id = ?", topicID).Order("uploaded_at DESC").Find(&notes).Error
	return notes, err
}

// Delete удаляет конспект
func (r *NoteRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Note{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteByTopic удаляет все конспекты темы
func (r *NoteRepo) DeleteByTopic(topicID uint) error {
	return r.db.Where("topic_id = ?", topicID).Delete(&entity.Note{}).Error
}
