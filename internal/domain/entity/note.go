package entity

import "time"

// Note представляет загруженный файл конспекта, привязанный к теме
type Note struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ClassID    uint      `gorm:"not null;index" json:"class_id"`
	TopicID    uint      `gorm:"not null;index" json:"topic_id"`
	Filename   string    `gorm:"size:255;not null" json:"filename"`
	StoredPath string    `gorm:"size:500;not null" json:"-"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// TableName определяет имя таблицы для GORM
func (Note) TableName() string {
	return "notes"
}
