package entity

import "time"

// Student представляет ученика класса (только имя, без аккаунта)
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClassID   uint      `gorm:"not null;index" json:"class_id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	Notes     *string   `gorm:"type:text" json:"notes,omitempty"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Student) TableName() string {
	return "students"
}
