package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	"github.com/yourusername/classboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// AssessmentRepo реализует repository.AssessmentRepository
type AssessmentRepo struct {
	db *gorm.DB
}

// NewAssessmentRepo создает новый репозиторий журнала оценок
func NewAssessmentRepo(db *gorm.DB) *AssessmentRepo {
	return &AssessmentRepo{db: db}
}

// Create создает новую контрольную
func (r *AssessmentRepo) Create(assessment *entity.Assessment) error {
	return r.db.Create(assessment).Error
}

// GetByID возвращает контрольную по ID
func (r *AssessmentRepo) GetByID(id uint) (*entity.Assessment, error) {
	var assessment entity.Assessment
	err := r.db.First(&assessment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &assessment, nil
}

// ListByClass возвращает контрольные класса, новые первыми
func (r *AssessmentRepo) ListByClass(classID uint) ([]entity.Assessment, error) {
	var assessments []entity.Assessment
	err := r.db.Where("class_id = ?", classID).
		Order("assessment_date DESC, id DESC").Find(&assessments).Error
	return assessments, err
}

// ListByClassChrono возвращает контрольные класса в хронологическом порядке
func (r *AssessmentRepo) ListByClassChrono(classID uint) ([]entity.Assessment, error) {
	var assessments []entity.Assessment
	err := r.db.Where("class_id = ?", classID).
		Order("assessment_date ASC, id ASC").Find(&assessments).Error
	return assessments, err
}

// CountByClass возвращает число контрольных класса
func (r *AssessmentRepo) CountByClass(classID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Assessment{}).Where("class_id = ?", classID).Count(&count).Error
	return count, err
}

// ListResults возвращает сохраненные оценки одной контрольной
func (r *AssessmentRepo) ListResults(assessmentID uint) ([]entity.AssessmentResult, error) {
	var results []entity.AssessmentResult
	err := r.db.Where("assessment_id = ?", assessmentID).Find(&results).Error
	return results, err
}

// ListResultsForStudent возвращает оценки ученика по списку контрольных
func (r *AssessmentRepo) ListResultsForStudent(assessmentIDs []uint, studentID uint) ([]entity.AssessmentResult, error) {
	if len(assessmentIDs) == 0 {
		return nil, nil
	}
	var results []entity.AssessmentResult
	err := r.db.Where("assessment_id IN ? AND student_id = ?", assessmentIDs, studentID).
		Find(&results).Error
	return results, err
}

// SaveResults атомарно вставляет или обновляет пачку оценок
// по ключу (assessment_id, student_id)
func (r *AssessmentRepo) SaveResults(results []entity.AssessmentResult) error {
	if len(results) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "assessment_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score_percent", "absent", "updated_at",
		}),
	}).Create(&results).Error
}

// ListClassResults возвращает все оценки контрольных класса для указанных учеников
func (r *AssessmentRepo) ListClassResults(classID uint, studentIDs []uint) ([]repository.ClassResultRow, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	type joinedRow struct {
		entity.AssessmentResult
		AClassID        uint      `gorm:"column:a_class_id"`
		ATitle          string    `gorm:"column:a_title"`
		AAssessmentDate time.Time `gorm:"column:a_assessment_date"`
	}

	var raw []joinedRow
	err := r.db.Table("assessment_results AS ar").
		Select("ar.*, a.class_id AS a_class_id, a.title AS a_title, a.assessment_date AS a_assessment_date").
		Joins("JOIN assessments a ON a.id = ar.assessment_id").
		Where("a.class_id = ? AND ar.student_id IN ?", classID, studentIDs).
		Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	rows := make([]repository.ClassResultRow, 0, len(raw))
	for _, jr := range raw {
		rows = append(rows, repository.ClassResultRow{
			Result: jr.AssessmentResult,
			Assessment: entity.Assessment{
				ID:             jr.AssessmentID,
				ClassID:        jr.AClassID,
				Title:          jr.ATitle,
				AssessmentDate: jr.AAssessmentDate,
			},
		})
	}
	return rows, nil
}

// AverageByAssessment считает средний балл по каждой контрольной,
// исключая отсутствовавших и пустые оценки
func (r *AssessmentRepo) AverageByAssessment(assessmentIDs []uint) (map[uint]float64, error) {
	averages := make(map[uint]float64)
	if len(assessmentIDs) == 0 {
		return averages, nil
	}

	type avgRow struct {
		AssessmentID uint
		Avg          float64
	}
	var raw []avgRow
	err := r.db.Model(&entity.AssessmentResult{}).
		Select("assessment_id, AVG(score_percent) AS avg").
		Where("assessment_id IN ? AND absent = ? AND score_percent IS NOT NULL", assessmentIDs, false).
		Group("assessment_id").
		Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	for _, row := range raw {
		averages[row.AssessmentID] = row.Avg
	}
	return averages, nil
}
