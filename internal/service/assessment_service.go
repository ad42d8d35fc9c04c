package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	"github.com/yourusername/classboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// Порог среднего балла, ниже которого ученик попадает в группу риска
const atRiskAverageThreshold = 50.0

// Число пропущенных контрольных, после которого ученик попадает в группу риска
const atRiskMissedThreshold = 2

// ResultEntry — одна оценка в пачке сохранения
type ResultEntry struct {
	StudentID    uint `json:"student_id"`
	ScorePercent *int `json:"score_percent"`
	Absent       bool `json:"absent"`
}

// GridRow — строка таблицы оценок: ученик плюс его оценка, если сохранена
type GridRow struct {
	Student entity.Student           `json:"student"`
	Result  *entity.AssessmentResult `json:"result,omitempty"`
}

// StudentRanking — позиция ученика в рейтинге класса
type StudentRanking struct {
	StudentID uint   `json:"student_id"`
	Name      string `json:"name"`
	// Average == nil, когда у ученика нет ни одной оценки
	Average   *float64 `json:"average,omitempty"`
	Completed int      `json:"completed"`
	Missed    int      `json:"missed"`
	AtRisk    bool     `json:"at_risk"`
}

// ClassInsights — аналитика успеваемости класса
type ClassInsights struct {
	Rankings         []StudentRanking `json:"rankings"`
	AtRisk           []StudentRanking `json:"at_risk"`
	TotalAssessments int64            `json:"total_assessments"`
}

// HistoryRow — оценка ученика за контрольную вместе со средним по классу
type HistoryRow struct {
	Assessment   entity.Assessment        `json:"assessment"`
	Result       *entity.AssessmentResult `json:"result,omitempty"`
	ClassAverage *float64                 `json:"class_average,omitempty"`
}

// ExportRow — строка экспорта журнала: ученик и его оценки по контрольным
type ExportRow struct {
	Student entity.Student
	// Scores выровнен по списку контрольных; nil — нет оценки или отсутствовал
	Scores []*int
	Absent []bool
}

// ExportData — данные для выгрузки журнала оценок
type ExportData struct {
	Class       *entity.Class
	Assessments []entity.Assessment
	Rows        []ExportRow
}

// AssessmentService предоставляет методы для журнала оценок и аналитики
type AssessmentService struct {
	assessmentRepo repository.AssessmentRepository
	studentRepo    repository.StudentRepository
	classRepo      repository.ClassRepository
}

// NewAssessmentService создает новый сервис журнала оценок
func NewAssessmentService(
	assessmentRepo repository.AssessmentRepository,
	studentRepo repository.StudentRepository,
	classRepo repository.ClassRepository,
) *AssessmentService {
	return &AssessmentService{
		assessmentRepo: assessmentRepo,
		studentRepo:    studentRepo,
		classRepo:      classRepo,
	}
}

// Create создает контрольную в журнале класса
func (s *AssessmentService) Create(ownerID, classID uint, title string, date time.Time) (*entity.Assessment, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: assessment title is required", apperrors.ErrValidation)
	}
	if date.IsZero() {
		date = time.Now()
	}

	assessment := &entity.Assessment{
		ClassID:        classID,
		Title:          title,
		AssessmentDate: date,
	}
	if err := s.assessmentRepo.Create(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// ListByClass возвращает контрольные класса, новые первыми
func (s *AssessmentService) ListByClass(ownerID, classID uint) ([]entity.Assessment, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}
	return s.assessmentRepo.ListByClass(classID)
}

// getOwnedAssessment возвращает контрольную, проверив владение классом
func (s *AssessmentService) getOwnedAssessment(ownerID, assessmentID uint) (*entity.Assessment, error) {
	assessment, err := s.assessmentRepo.GetByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.classRepo.GetByIDForOwner(assessment.ClassID, ownerID); err != nil {
		return nil, err
	}
	return assessment, nil
}

// Grid возвращает таблицу оценок контрольной по активным ученикам класса.
// Ученики без сохраненной оценки присутствуют с пустой ячейкой.
func (s *AssessmentService) Grid(ownerID, assessmentID uint) (*entity.Assessment, []GridRow, error) {
	assessment, err := s.getOwnedAssessment(ownerID, assessmentID)
	if err != nil {
		return nil, nil, err
	}

	students, err := s.studentRepo.ListActiveByClass(assessment.ClassID)
	if err != nil {
		return nil, nil, err
	}
	results, err := s.assessmentRepo.ListResults(assessmentID)
	if err != nil {
		return nil, nil, err
	}

	byStudent := make(map[uint]entity.AssessmentResult, len(results))
	for _, r := range results {
		byStudent[r.StudentID] = r
	}

	rows := make([]GridRow, 0, len(students))
	for _, st := range students {
		row := GridRow{Student: st}
		if r, ok := byStudent[st.ID]; ok {
			result := r
			row.Result = &result
		}
		rows = append(rows, row)
	}
	return assessment, rows, nil
}

// SaveResults сохраняет пачку оценок контрольной. У отсутствовавших
// балл обнуляется в nil; у остальных пустой балл трактуется как 0.
func (s *AssessmentService) SaveResults(ownerID, assessmentID uint, entries []ResultEntry) error {
	if _, err := s.getOwnedAssessment(ownerID, assessmentID); err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: no results to save", apperrors.ErrValidation)
	}

	results := make([]entity.AssessmentResult, 0, len(entries))
	for _, e := range entries {
		result := entity.AssessmentResult{
			AssessmentID: assessmentID,
			StudentID:    e.StudentID,
			Absent:       e.Absent,
		}
		if !e.Absent {
			score := 0
			if e.ScorePercent != nil {
				score = *e.ScorePercent
			}
			if score < 0 || score > 100 {
				return fmt.Errorf("%w: score for student %d must be between 0 and 100", apperrors.ErrValidation, e.StudentID)
			}
			result.ScorePercent = &score
		}
		results = append(results, result)
	}

	return s.assessmentRepo.SaveResults(results)
}

// Insights строит рейтинг класса и группу риска
func (s *AssessmentService) Insights(ownerID, classID uint) (*ClassInsights, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}

	students, err := s.studentRepo.ListActiveByClass(classID)
	if err != nil {
		return nil, err
	}
	total, err := s.assessmentRepo.CountByClass(classID)
	if err != nil {
		return nil, err
	}

	studentIDs := make([]uint, 0, len(students))
	for _, st := range students {
		studentIDs = append(studentIDs, st.ID)
	}
	rows, err := s.assessmentRepo.ListClassResults(classID, studentIDs)
	if err != nil {
		return nil, err
	}

	type acc struct {
		sum       int
		completed int
		missed    int
	}
	byStudent := make(map[uint]*acc, len(students))
	for _, row := range rows {
		a := byStudent[row.Result.StudentID]
		if a == nil {
			a = &acc{}
			byStudent[row.Result.StudentID] = a
		}
		if row.Result.Absent {
			a.missed++
		} else if row.Result.ScorePercent != nil {
			a.sum += *row.Result.ScorePercent
			a.completed++
		}
	}

	rankings := make([]StudentRanking, 0, len(students))
	for _, st := range students {
		ranking := StudentRanking{
			StudentID: st.ID,
			Name:      st.FirstName,
		}
		if a := byStudent[st.ID]; a != nil {
			ranking.Completed = a.completed
			ranking.Missed = a.missed
			if a.completed > 0 {
				avg := math.Round(float64(a.sum)/float64(a.completed)*10) / 10
				ranking.Average = &avg
			}
		}
		ranking.AtRisk = (ranking.Average != nil && *ranking.Average < atRiskAverageThreshold) ||
			ranking.Missed >= atRiskMissedThreshold
		rankings = append(rankings, ranking)
	}

	// Лучшие сверху; ученики без оценок в конце, по имени
	sort.SliceStable(rankings, func(i, j int) bool {
		a, b := rankings[i], rankings[j]
		switch {
		case a.Average == nil && b.Average == nil:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case a.Average == nil:
			return false
		case b.Average == nil:
			return true
		case *a.Average != *b.Average:
			return *a.Average > *b.Average
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	})

	atRisk := make([]StudentRanking, 0)
	for _, r := range rankings {
		if r.AtRisk {
			atRisk = append(atRisk, r)
		}
	}

	return &ClassInsights{
		Rankings:         rankings,
		AtRisk:           atRisk,
		TotalAssessments: total,
	}, nil
}

// History возвращает оценки ученика по всем контрольным класса
// в хронологическом порядке, со средним по классу за каждую
func (s *AssessmentService) History(ownerID, studentID uint) (*entity.Student, []HistoryRow, error) {
	student, err := s.studentRepo.GetByID(studentID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.classRepo.GetByIDForOwner(student.ClassID, ownerID); err != nil {
		return nil, nil, err
	}

	assessments, err := s.assessmentRepo.ListByClassChrono(student.ClassID)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uint, 0, len(assessments))
	for _, a := range assessments {
		ids = append(ids, a.ID)
	}
	results, err := s.assessmentRepo.ListResultsForStudent(ids, studentID)
	if err != nil {
		return nil, nil, err
	}
	averages, err := s.assessmentRepo.AverageByAssessment(ids)
	if err != nil {
		return nil, nil, err
	}

	byAssessment := make(map[uint]entity.AssessmentResult, len(results))
	for _, r := range results {
		byAssessment[r.AssessmentID] = r
	}

	rows := make([]HistoryRow, 0, len(assessments))
	for _, a := range assessments {
		row := HistoryRow{Assessment: a}
		if r, ok := byAssessment[a.ID]; ok {
			result := r
			row.Result = &result
		}
		if avg, ok := averages[a.ID]; ok {
			rounded := math.Round(avg*10) / 10
			row.ClassAverage = &rounded
		}
		rows = append(rows, row)
	}
	return student, rows, nil
}

// Export собирает полный журнал класса для выгрузки в CSV/XLSX
func (s *AssessmentService) Export(ownerID, classID uint) (*ExportData, error) {
	class, err := s.classRepo.GetByIDForOwner(classID, ownerID)
	if err != nil {
		return nil, err
	}

	assessments, err := s.assessmentRepo.ListByClassChrono(classID)
	if err != nil {
		return nil, err
	}
	students, err := s.studentRepo.ListActiveByClass(classID)
	if err != nil {
		return nil, err
	}

	studentIDs := make([]uint, 0, len(students))
	for _, st := range students {
		studentIDs = append(studentIDs, st.ID)
	}
	rows, err := s.assessmentRepo.ListClassResults(classID, studentIDs)
	if err != nil {
		return nil, err
	}

	type key struct {
		assessmentID uint
		studentID    uint
	}
	byKey := make(map[key]entity.AssessmentResult, len(rows))
	for _, row := range rows {
		byKey[key{row.Result.AssessmentID, row.Result.StudentID}] = row.Result
	}

	exportRows := make([]ExportRow, 0, len(students))
	for _, st := range students {
		row := ExportRow{
			Student: st,
			Scores:  make([]*int, len(assessments)),
			Absent:  make([]bool, len(assessments)),
		}
		for i, a := range assessments {
			if r, ok := byKey[key{a.ID, st.ID}]; ok {
				row.Scores[i] = r.ScorePercent
				row.Absent[i] = r.Absent
			}
		}
		exportRows = append(exportRows, row)
	}

	return &ExportData{
		Class:       class,
		Assessments: assessments,
		Rows:        exportRows,
	}, nil
}
