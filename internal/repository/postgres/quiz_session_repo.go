package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// QuizSessionRepo реализует repository.QuizSessionRepository
type QuizSessionRepo struct {
	db *gorm.DB
}

// NewQuizSessionRepo создает новый репозиторий живых сессий
func NewQuizSessionRepo(db *gorm.DB) *QuizSessionRepo {
	return &QuizSessionRepo{db: db}
}

// Create сохраняет новую сессию; возвращает apperrors.ErrConflict,
// если код сессии уже занят
func (r *QuizSessionRepo) Create(session *entity.QuizSession) error {
	err := r.db.Create(session).Error
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetByCode возвращает сессию по шестизначному коду
func (r *QuizSessionRepo) GetByCode(code string) (*entity.QuizSession, error) {
	var session entity.QuizSession
	err := r.db.Where("code = ?", code).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Save обновляет сессию целиком
func (r *QuizSessionRepo) Save(session *entity.QuizSession) error {
	return r.db.Save(session).Error
}

// QuizParticipantRepo реализует repository.QuizParticipantRepository
type QuizParticipantRepo struct {
	db *gorm.DB
}

// NewQuizParticipantRepo создает новый репозиторий участников сессии
func NewQuizParticipantRepo(db *gorm.DB) *QuizParticipantRepo {
	return &QuizParticipantRepo{db: db}
}

// Create сохраняет участника; возвращает apperrors.ErrConflict
// при повторном anon_id внутри сессии
func (r *QuizParticipantRepo) Create(participant *entity.QuizParticipant) error {
	err := r.db.Create(participant).Error
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetBySessionAnon возвращает участника по паре (сессия, anon_id)
func (r *QuizParticipantRepo) GetBySessionAnon(sessionID uint, anonID string) (*entity.QuizParticipant, error) {
	var participant entity.QuizParticipant
	err := r.db.Where("session_id = ? AND anon_id = ?", sessionID, anonID).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &participant, nil
}

// ListBySession возвращает участников сессии в порядке входа
func (r *QuizParticipantRepo) ListBySession(sessionID uint) ([]entity.QuizParticipant, error) {
	var participants []entity.QuizParticipant
	err := r.db.Where("session_id = ?", sessionID).
		Order("joined_at ASC, id ASC").Find(&participants).Error
	return participants, err
}

// CountBySession возвращает число участников сессии
func (r *QuizParticipantRepo) CountBySession(sessionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.QuizParticipant{}).
		Where("session_id = ?", sessionID).Count(&count).Error
	return count, err
}

// QuizAnswerRepo реализует repository.QuizAnswerRepository
type QuizAnswerRepo struct {
	db *gorm.DB
}

// NewQuizAnswerRepo создает новый репозиторий ответов участников
func NewQuizAnswerRepo(db *gorm.DB) *QuizAnswerRepo {
	return &QuizAnswerRepo{db: db}
}

// Upsert атомарно вставляет ответ или перезаписывает выбор и время
// по ключу (participant_id, question_id)
func (r *QuizAnswerRepo) Upsert(answer *entity.QuizAnswer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "participant_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"choice", "answered_at",
		}),
	}).Create(answer).Error
}

// ListBySession возвращает все ответы сессии
func (r *QuizAnswerRepo) ListBySession(sessionID uint) ([]entity.QuizAnswer, error) {
	var answers []entity.QuizAnswer
	err := r.db.Where("session_id = ?", sessionID).Find(&answers).Error
	return answers, err
}

// CountByQuestion возвращает число участников, ответивших на вопрос
func (r *QuizAnswerRepo) CountByQuestion(sessionID uint, questionID string) (int64, error) {
	var count int64
	err := r.db.Model(&entity.QuizAnswer{}).
		Where("session_id = ? AND question_id = ?", sessionID, questionID).
		Count(&count).Error
	return count, err
}
