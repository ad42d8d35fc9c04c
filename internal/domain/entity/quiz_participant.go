package entity

import "time"

// QuizParticipant представляет участника живой сессии.
// AnonID уникален в пределах сессии: повторный join с тем же AnonID
// возвращает существующую запись без изменений.
type QuizParticipant struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	SessionID uint   `gorm:"not null;index:idx_participants_session_anon,unique" json:"session_id"`
	AnonID    string `gorm:"size:64;not null;index:idx_participants_session_anon,unique" json:"anon_id"`
	// Nickname всегда nil в анонимных сессиях
	Nickname *string   `gorm:"size:100" json:"nickname,omitempty"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizParticipant) TableName() string {
	return "quiz_participants"
}

// DisplayName возвращает имя для отображения в результатах
func (p *QuizParticipant) DisplayName(anonymous bool) string {
	if anonymous {
		return "Anonymous"
	}
	if p.Nickname != nil && *p.Nickname != "" {
		return *p.Nickname
	}
	return "Player"
}
