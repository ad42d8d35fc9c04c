package entity

import "time"

// TestCategory группирует загруженные варианты контрольных
type TestCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClassID     uint      `gorm:"not null;index" json:"class_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (TestCategory) TableName() string {
	return "test_categories"
}

// TestItem представляет загруженный PDF контрольной.
// CategoryID == nil для работ вне категорий.
type TestItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClassID     uint      `gorm:"not null;index" json:"class_id"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Filename    string    `gorm:"size:255;not null" json:"filename"`
	StoredPath  string    `gorm:"size:500;not null" json:"-"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// TableName определяет имя таблицы для GORM
func (TestItem) TableName() string {
	return "tests"
}
