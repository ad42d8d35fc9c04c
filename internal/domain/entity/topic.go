package entity

import "time"

// Виды тем: обычные конспекты и экзаменационные материалы
const (
	TopicKindNotes = "notes"
	TopicKindExam  = "exam"
)

// Topic группирует загруженные материалы внутри класса
type Topic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClassID   uint      `gorm:"not null;index" json:"class_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Kind      string    `gorm:"size:10;not null;default:'notes';index" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Topic) TableName() string {
	return "topics"
}
