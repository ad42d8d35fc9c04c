package entity

import "time"

// Class представляет учебный класс
type Class struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerUserID uint      `gorm:"not null;index" json:"owner_user_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Subject     string    `gorm:"size:100;not null" json:"subject"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Class) TableName() string {
	return "classes"
}
