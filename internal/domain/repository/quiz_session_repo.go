package repository

import "github.com/yourusername/classboard-api/internal/domain/entity"

// QuizSessionRepository определяет методы для работы с живыми сессиями.
// Чистый доступ к данным: правила переходов живут в машине состояний.
type QuizSessionRepository interface {
	// Create сохраняет новую сессию; возвращает apperrors.ErrConflict,
	// если код сессии уже занят
	Create(session *entity.QuizSession) error
	GetByCode(code string) (*entity.QuizSession, error)
	Save(session *entity.QuizSession) error
}

// QuizParticipantRepository определяет методы для работы с участниками сессии
type QuizParticipantRepository interface {
	// Create сохраняет участника; возвращает apperrors.ErrConflict
	// при повторном anon_id внутри сессии
	Create(participant *entity.QuizParticipant) error
	// GetBySessionAnon возвращает участника по паре (сессия, anon_id)
	GetBySessionAnon(sessionID uint, anonID string) (*entity.QuizParticipant, error)
	ListBySession(sessionID uint) ([]entity.QuizParticipant, error)
	CountBySession(sessionID uint) (int64, error)
}

// QuizAnswerRepository определяет методы для работы с ответами участников
type QuizAnswerRepository interface {
	// Upsert атомарно вставляет ответ или перезаписывает выбор и время
	// по ключу (participant_id, question_id)
	Upsert(answer *entity.QuizAnswer) error
	ListBySession(sessionID uint) ([]entity.QuizAnswer, error)
	// CountByQuestion возвращает число участников, ответивших на вопрос
	CountByQuestion(sessionID uint, questionID string) (int64, error)
}
