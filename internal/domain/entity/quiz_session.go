package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Константы состояний живой сессии
const (
	SessionStateLobby = "lobby"
	SessionStateLive  = "live"
	SessionStateEnded = "ended"
)

// ChoiceLabels — допустимые метки вариантов ответа в порядке отображения
var ChoiceLabels = []string{"A", "B", "C", "D"}

// ChoiceSet хранит четыре именованных варианта ответа.
// Фиксированная форма вместо открытой map: кривые ключи не могут
// молча потеряться при сериализации.
type ChoiceSet struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Get возвращает текст варианта по метке A-D
func (c ChoiceSet) Get(label string) string {
	switch label {
	case "A":
		return c.A
	case "B":
		return c.B
	case "C":
		return c.C
	case "D":
		return c.D
	}
	return ""
}

// NonEmptyCount возвращает число заполненных вариантов
func (c ChoiceSet) NonEmptyCount() int {
	n := 0
	for _, label := range ChoiceLabels {
		if c.Get(label) != "" {
			n++
		}
	}
	return n
}

// SessionQuestion представляет один вопрос в списке вопросов сессии
type SessionQuestion struct {
	ID      string    `json:"id"`
	Prompt  string    `json:"prompt"`
	Choices ChoiceSet `json:"choices"`
	// Correct хранит метку правильного варианта (A-D) или nil для
	// вопросов без оценивания. Клиенту никогда не отдается.
	Correct *string `json:"correct,omitempty"`
}

// QuestionList - пользовательский тип для работы с JSONB
type QuestionList []SessionQuestion

// Scan реализует интерфейс sql.Scanner для QuestionList
// Используется GORM для чтения JSONB данных из базы
func (q *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*q = QuestionList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*q = QuestionList{}
		return nil
	}

	return json.Unmarshal(bytes, q)
}

// Value реализует интерфейс driver.Valuer для QuestionList
// Используется GORM для записи QuestionList в JSONB в базе
func (q QuestionList) Value() (driver.Value, error) {
	if len(q) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(q)
}

// QuizSession представляет живую сессию опроса в классе.
// Список вопросов неизменяем после создания; порядок фиксируется один раз
// (с перемешиванием или без) и индекс — это просто позиция в нем.
type QuizSession struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ClassID   uint   `gorm:"not null;index" json:"class_id"`
	Code      string `gorm:"size:6;not null;uniqueIndex" json:"session_code"`
	Title     string `gorm:"size:200;not null" json:"title"`
	Anonymous bool   `gorm:"not null;default:true" json:"anonymous"`

	Questions QuestionList `gorm:"type:jsonb;not null" json:"-"`

	State        string `gorm:"size:10;not null;default:'lobby';index" json:"state"`
	CurrentIndex int    `gorm:"not null;default:-1" json:"current_index"`

	// SecondsPerQuestion == nil означает вопросы без таймера
	SecondsPerQuestion *int `json:"seconds_per_question,omitempty"`

	ShuffleQuestions bool `gorm:"not null;default:false" json:"shuffle_questions"`
	// AutoAdvance: досрочно гасить таймер вопроса, когда ответили все
	AutoAdvance bool `gorm:"not null;default:true" json:"auto_advance"`

	CreatedAt         time.Time  `json:"created_at"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	QuestionStartedAt *time.Time `json:"-"`
	EndedAt           *time.Time `json:"ended_at,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (QuizSession) TableName() string {
	return "quiz_sessions"
}

// IsLobby проверяет, что сессия еще не запущена
func (s *QuizSession) IsLobby() bool {
	return s.State == SessionStateLobby
}

// IsLive проверяет, идет ли сессия
func (s *QuizSession) IsLive() bool {
	return s.State == SessionStateLive
}

// IsEnded проверяет, завершена ли сессия
func (s *QuizSession) IsEnded() bool {
	return s.State == SessionStateEnded
}

// CurrentQuestion возвращает вопрос по текущему индексу
// или nil, если индекс вне диапазона (например, до старта)
func (s *QuizSession) CurrentQuestion() *SessionQuestion {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	q := s.Questions[s.CurrentIndex]
	return &q
}
