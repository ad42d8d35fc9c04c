package entity

import "time"

// Assessment представляет проведенную в классе контрольную (журнал оценок)
type Assessment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ClassID        uint      `gorm:"not null;index" json:"class_id"`
	Title          string    `gorm:"size:200;not null" json:"title"`
	AssessmentDate time.Time `gorm:"not null" json:"assessment_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Assessment) TableName() string {
	return "assessments"
}

// AssessmentResult представляет оценку одного ученика за контрольную.
// ScorePercent == nil при отсутствии ученика (Absent=true).
type AssessmentResult struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	AssessmentID uint `gorm:"not null;index:idx_results_assessment_student,unique" json:"assessment_id"`
	StudentID    uint `gorm:"not null;index:idx_results_assessment_student,unique" json:"student_id"`

	ScorePercent *int `json:"score_percent"` // 0-100
	Absent       bool `gorm:"not null;default:false" json:"absent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (AssessmentResult) TableName() string {
	return "assessment_results"
}
