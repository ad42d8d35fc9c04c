package entity

import "time"

// AccessLink представляет токен доступа учеников к витрине класса.
// На класс активна не более одной ссылки: перевыпуск деактивирует старые.
type AccessLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClassID   uint      `gorm:"not null;index" json:"class_id"`
	Token     string    `gorm:"size:64;not null;uniqueIndex" json:"token"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (AccessLink) TableName() string {
	return "access_links"
}
