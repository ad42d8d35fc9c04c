package entity

import "time"

// QuizAnswer представляет текущий выбор участника по одному вопросу.
// Инвариант: не более одной записи на пару (участник, вопрос) —
// повторная отправка перезаписывает выбор и время, а не создает дубликат.
type QuizAnswer struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SessionID     uint      `gorm:"not null;index" json:"session_id"`
	ParticipantID uint      `gorm:"not null;index:idx_answers_participant_question,unique" json:"participant_id"`
	QuestionID    string    `gorm:"size:64;not null;index:idx_answers_participant_question,unique" json:"question_id"`
	Choice        string    `gorm:"size:1;not null" json:"choice"`
	AnsweredAt    time.Time `gorm:"autoCreateTime" json:"answered_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
