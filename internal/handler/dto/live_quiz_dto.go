package dto

import (
	"time"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	"github.com/yourusername/classboard-api/internal/service"
)

// QuestionView представляет вопрос в формате для участника,
// без метки правильного ответа
type QuestionView struct {
	ID      string           `json:"id"`
	Prompt  string           `json:"prompt"`
	Choices entity.ChoiceSet `json:"choices"`
}

// SessionResponse представляет сессию в формате для ответа учителю
type SessionResponse struct {
	ID                 uint       `json:"id"`
	ClassID            uint       `json:"class_id"`
	Code               string     `json:"session_code"`
	Title              string     `json:"title"`
	Anonymous          bool       `json:"anonymous"`
	State              string     `json:"state"`
	CurrentIndex       int        `json:"current_index"`
	TotalQuestions     int        `json:"total_questions"`
	SecondsPerQuestion *int       `json:"seconds_per_question,omitempty"`
	AutoAdvance        bool       `json:"auto_advance"`
	CreatedAt          time.Time  `json:"created_at"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
}

// StatusResponse представляет состояние сессии для панели учителя
type StatusResponse struct {
	SessionResponse
	Joined          int64         `json:"joined"`
	AnsweredCurrent int64         `json:"answered_current"`
	TimeLeftSeconds *int          `json:"time_left_seconds,omitempty"`
	Question        *QuestionView `json:"question,omitempty"`
}

// CurrentResponse представляет текущий вопрос для участника
type CurrentResponse struct {
	State           string        `json:"state"`
	CurrentIndex    int           `json:"current_index"`
	TotalQuestions  int           `json:"total_questions"`
	Question        *QuestionView `json:"question,omitempty"`
	TimeLeftSeconds *int          `json:"time_left_seconds,omitempty"`
}

// JoinResponse представляет ответ на вход участника в сессию.
// AnonID возвращается всегда, чтобы клиент сохранил его для повторных входов.
type JoinResponse struct {
	SessionCode string  `json:"session_code"`
	Title       string  `json:"title"`
	State       string  `json:"state"`
	Anonymous   bool    `json:"anonymous"`
	AnonID      string  `json:"anon_id"`
	Nickname    *string `json:"nickname,omitempty"`
}

// NewQuestionView создает DTO вопроса без правильного ответа
func NewQuestionView(q *entity.SessionQuestion) *QuestionView {
	if q == nil {
		return nil
	}
	return &QuestionView{
		ID:      q.ID,
		Prompt:  q.Prompt,
		Choices: q.Choices,
	}
}

// NewSessionResponse создает DTO сессии из сущности
func NewSessionResponse(s *entity.QuizSession) SessionResponse {
	return SessionResponse{
		ID:                 s.ID,
		ClassID:            s.ClassID,
		Code:               s.Code,
		Title:              s.Title,
		Anonymous:          s.Anonymous,
		State:              s.State,
		CurrentIndex:       s.CurrentIndex,
		TotalQuestions:     len(s.Questions),
		SecondsPerQuestion: s.SecondsPerQuestion,
		AutoAdvance:        s.AutoAdvance,
		CreatedAt:          s.CreatedAt,
		StartedAt:          s.StartedAt,
		EndedAt:            s.EndedAt,
	}
}

// NewStatusResponse создает DTO состояния сессии для учителя
func NewStatusResponse(status *service.SessionStatus) StatusResponse {
	return StatusResponse{
		SessionResponse: NewSessionResponse(status.Session),
		Joined:          status.Joined,
		AnsweredCurrent: status.AnsweredCurrent,
		TimeLeftSeconds: status.TimeLeft,
		Question:        NewQuestionView(status.Session.CurrentQuestion()),
	}
}

// NewCurrentResponse создает DTO текущего вопроса для участника
func NewCurrentResponse(view *service.CurrentView) CurrentResponse {
	return CurrentResponse{
		State:           view.State,
		CurrentIndex:    view.CurrentIndex,
		TotalQuestions:  view.TotalQuestions,
		Question:        NewQuestionView(view.Question),
		TimeLeftSeconds: view.TimeLeft,
	}
}

// NewJoinResponse создает DTO ответа на вход в сессию
func NewJoinResponse(s *entity.QuizSession, p *entity.QuizParticipant) JoinResponse {
	return JoinResponse{
		SessionCode: s.Code,
		Title:       s.Title,
		State:       s.State,
		Anonymous:   s.Anonymous,
		AnonID:      p.AnonID,
		Nickname:    p.Nickname,
	}
}
