package entity

import "time"

// Типы событий календаря
const (
	EventTypeGeneral  = "general"
	EventTypeTest     = "test"
	EventTypeHomework = "homework"
	EventTypeTrip     = "trip"
)

// CalendarEvent представляет событие календаря.
// ClassID == nil означает общешкольное событие, видимое во всех классах.
type CalendarEvent struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ClassID     *uint   `gorm:"index" json:"class_id,omitempty"`
	Title       string  `gorm:"size:200;not null" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	EventDate time.Time  `gorm:"not null;index" json:"event_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	AllDay    bool       `gorm:"not null;default:false" json:"all_day"`

	EventType string    `gorm:"size:20;not null;default:'general'" json:"event_type"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (CalendarEvent) TableName() string {
	return "calendar_events"
}
