package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
func (o *StringArray) Scan(value interface{}) error {
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// Post представляет объявление в ленте класса
type Post struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	ClassID   uint        `gorm:"not null;index" json:"class_id"`
	Author    string      `gorm:"size:100;not null" json:"author"`
	Content   string      `gorm:"type:text;not null" json:"content"`
	Links     StringArray `gorm:"type:jsonb;not null" json:"links"`
	CreatedAt time.Time   `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Post) TableName() string {
	return "posts"
}
