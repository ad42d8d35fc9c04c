package repository

import "github.com/yourusername/classboard-api/internal/domain/entity"

// ClassResultRow — строка результата вместе с данными контрольной,
// используется для агрегатов по классу
type ClassResultRow struct {
	Result     entity.AssessmentResult
	Assessment entity.Assessment
}

// AssessmentRepository определяет методы для работы с журналом оценок
type AssessmentRepository interface {
	Create(assessment *entity.Assessment) error
	GetByID(id uint) (*entity.Assessment, error)
	// ListByClass возвращает контрольные класса, новые первыми
	ListByClass(classID uint) ([]entity.Assessment, error)
	// ListByClassChrono возвращает контрольные класса в хронологическом порядке
	ListByClassChrono(classID uint) ([]entity.Assessment, error)
	CountByClass(classID uint) (int64, error)

	// ListResults возвращает сохраненные оценки одной контрольной
	ListResults(assessmentID uint) ([]entity.AssessmentResult, error)
	// ListResultsForStudent возвращает оценки ученика по списку контрольных
	ListResultsForStudent(assessmentIDs []uint, studentID uint) ([]entity.AssessmentResult, error)
	// SaveResults атомарно вставляет или обновляет пачку оценок
	// по ключу (assessment_id, student_id)
	SaveResults(results []entity.AssessmentResult) error

	// ListClassResults возвращает все оценки контрольных класса для указанных учеников
	ListClassResults(classID uint, studentIDs []uint) ([]ClassResultRow, error)
	// AverageByAssessment считает средний балл по каждой контрольной,
	// исключая отсутствовавших и пустые оценки
	AverageByAssessment(assessmentIDs []uint) (map[uint]float64, error)
}
