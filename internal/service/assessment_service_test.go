package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/classboard-api/internal/domain/entity"
	"github.com/yourusername/classboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// ============================================================================
// Моки для тестирования AssessmentService
// ============================================================================

// MockAssessmentRepository реализует repository.AssessmentRepository
type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Create(assessment *entity.Assessment) error {
	args := m.Called(assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) GetByID(id uint) (*entity.Assessment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) ListByClass(classID uint) ([]entity.Assessment, error) {
	args := m.Called(classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) ListByClassChrono(classID uint) ([]entity.Assessment, error) {
	args := m.Called(classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) CountByClass(classID uint) (int64, error) {
	args := m.Called(classID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssessmentRepository) ListResults(assessmentID uint) ([]entity.AssessmentResult, error) {
	args := m.Called(assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AssessmentResult), args.Error(1)
}

func (m *MockAssessmentRepository) ListResultsForStudent(assessmentIDs []uint, studentID uint) ([]entity.AssessmentResult, error) {
	args := m.Called(assessmentIDs, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AssessmentResult), args.Error(1)
}

func (m *MockAssessmentRepository) SaveResults(results []entity.AssessmentResult) error {
	args := m.Called(results)
	return args.Error(0)
}

func (m *MockAssessmentRepository) ListClassResults(classID uint, studentIDs []uint) ([]repository.ClassResultRow, error) {
	args := m.Called(classID, studentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ClassResultRow), args.Error(1)
}

func (m *MockAssessmentRepository) AverageByAssessment(assessmentIDs []uint) (map[uint]float64, error) {
	args := m.Called(assessmentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]float64), args.Error(1)
}

// MockStudentRepository реализует repository.StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(student *entity.Student) error {
	args := m.Called(student)
	return args.Error(0)
}

func (m *MockStudentRepository) CreateBatch(students []entity.Student) error {
	args := m.Called(students)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByID(id uint) (*entity.Student, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Student), args.Error(1)
}

func (m *MockStudentRepository) ListByClass(classID uint) ([]entity.Student, error) {
	args := m.Called(classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Student), args.Error(1)
}

func (m *MockStudentRepository) ListActiveByClass(classID uint) ([]entity.Student, error) {
	args := m.Called(classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Student), args.Error(1)
}

func (m *MockStudentRepository) Update(student *entity.Student) error {
	args := m.Called(student)
	return args.Error(0)
}

// ============================================================================
// Вспомогательные функции
// ============================================================================

type assessmentMocks struct {
	assessments *MockAssessmentRepository
	students    *MockStudentRepository
	classes     *MockClassRepository
}

func newTestAssessmentService() (*AssessmentService, *assessmentMocks) {
	mocks := &assessmentMocks{
		assessments: new(MockAssessmentRepository),
		students:    new(MockStudentRepository),
		classes:     new(MockClassRepository),
	}
	return NewAssessmentService(mocks.assessments, mocks.students, mocks.classes), mocks
}

func scorePtr(n int) *int {
	return &n
}

func resultRow(studentID uint, score *int, absent bool) repository.ClassResultRow {
	return repository.ClassResultRow{
		Result: entity.AssessmentResult{StudentID: studentID, ScorePercent: score, Absent: absent},
	}
}

// ============================================================================
// Тесты для AssessmentService
// ============================================================================

func TestAssessmentService_Create_RequiresTitle(t *testing.T) {
	svc, mocks := newTestAssessmentService()
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)

	_, err := svc.Create(5, 1, "   ", time.Now())

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAssessmentService_Grid_IncludesStudentsWithoutResults(t *testing.T) {
	// Arrange: двое учеников, оценка сохранена только у первого
	svc, mocks := newTestAssessmentService()
	assessment := &entity.Assessment{ID: 3, ClassID: 1}
	students := []entity.Student{{ID: 1, FirstName: "Аня"}, {ID: 2, FirstName: "Боря"}}
	results := []entity.AssessmentResult{{AssessmentID: 3, StudentID: 1, ScorePercent: scorePtr(80)}}

	mocks.assessments.On("GetByID", uint(3)).Return(assessment, nil)
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)
	mocks.students.On("ListActiveByClass", uint(1)).Return(students, nil)
	mocks.assessments.On("ListResults", uint(3)).Return(results, nil)

	// Act
	_, rows, err := svc.Grid(5, 3)

	// Assert
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Result)
	assert.Equal(t, 80, *rows[0].Result.ScorePercent)
	assert.Nil(t, rows[1].Result, "Ученик без оценки получает пустую ячейку")
}

func TestAssessmentService_SaveResults_AbsentClearsScore(t *testing.T) {
	// Arrange
	svc, mocks := newTestAssessmentService()
	assessment := &entity.Assessment{ID: 3, ClassID: 1}
	mocks.assessments.On("GetByID", uint(3)).Return(assessment, nil)
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)
	mocks.assessments.On("SaveResults", mock.MatchedBy(func(results []entity.AssessmentResult) bool {
		// У отсутствовавшего балл сброшен, у пустого — ноль
		return len(results) == 3 &&
			results[0].ScorePercent == nil && results[0].Absent &&
			*results[1].ScorePercent == 90 &&
			*results[2].ScorePercent == 0
	})).Return(nil)

	// Act
	err := svc.SaveResults(5, 3, []ResultEntry{
		{StudentID: 1, ScorePercent: scorePtr(70), Absent: true},
		{StudentID: 2, ScorePercent: scorePtr(90)},
		{StudentID: 3},
	})

	// Assert
	require.NoError(t, err)
	mocks.assessments.AssertExpectations(t)
}

func TestAssessmentService_SaveResults_RejectsOutOfRange(t *testing.T) {
	svc, mocks := newTestAssessmentService()
	assessment := &entity.Assessment{ID: 3, ClassID: 1}
	mocks.assessments.On("GetByID", uint(3)).Return(assessment, nil)
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)

	err := svc.SaveResults(5, 3, []ResultEntry{{StudentID: 1, ScorePercent: scorePtr(101)}})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mocks.assessments.AssertNotCalled(t, "SaveResults", mock.Anything)
}

func TestAssessmentService_Insights_RankingAndAtRisk(t *testing.T) {
	// Arrange: Аня — отличница, Боря ниже порога, Вера дважды отсутствовала
	svc, mocks := newTestAssessmentService()
	students := []entity.Student{
		{ID: 1, FirstName: "Аня"},
		{ID: 2, FirstName: "Боря"},
		{ID: 3, FirstName: "Вера"},
	}
	rows := []repository.ClassResultRow{
		resultRow(1, scorePtr(90), false),
		resultRow(1, scorePtr(95), false),
		resultRow(2, scorePtr(40), false),
		resultRow(2, scorePtr(45), false),
		resultRow(3, scorePtr(70), false),
		resultRow(3, nil, true),
		resultRow(3, nil, true),
	}

	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)
	mocks.students.On("ListActiveByClass", uint(1)).Return(students, nil)
	mocks.assessments.On("CountByClass", uint(1)).Return(int64(3), nil)
	mocks.assessments.On("ListClassResults", uint(1), []uint{1, 2, 3}).Return(rows, nil)

	// Act
	insights, err := svc.Insights(5, 1)

	// Assert
	require.NoError(t, err)
	require.Len(t, insights.Rankings, 3)
	assert.Equal(t, "Аня", insights.Rankings[0].Name)
	assert.Equal(t, 92.5, *insights.Rankings[0].Average)
	assert.False(t, insights.Rankings[0].AtRisk)

	// В группе риска Боря (средний 42.5 < 50) и Вера (2 пропуска)
	require.Len(t, insights.AtRisk, 2)
	names := []string{insights.AtRisk[0].Name, insights.AtRisk[1].Name}
	assert.Contains(t, names, "Боря")
	assert.Contains(t, names, "Вера")
	assert.Equal(t, int64(3), insights.TotalAssessments)
}

func TestAssessmentService_Insights_StudentsWithoutScoresGoLast(t *testing.T) {
	// Arrange
	svc, mocks := newTestAssessmentService()
	students := []entity.Student{
		{ID: 1, FirstName: "Яна"},
		{ID: 2, FirstName: "Боря"},
	}
	rows := []repository.ClassResultRow{resultRow(2, scorePtr(60), false)}

	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)
	mocks.students.On("ListActiveByClass", uint(1)).Return(students, nil)
	mocks.assessments.On("CountByClass", uint(1)).Return(int64(1), nil)
	mocks.assessments.On("ListClassResults", uint(1), []uint{1, 2}).Return(rows, nil)

	// Act
	insights, err := svc.Insights(5, 1)

	// Assert: Яна без оценок уходит в конец несмотря на алфавит
	require.NoError(t, err)
	assert.Equal(t, "Боря", insights.Rankings[0].Name)
	assert.Equal(t, "Яна", insights.Rankings[1].Name)
	assert.Nil(t, insights.Rankings[1].Average)
}

func TestAssessmentService_History_AlignsResultsAndAverages(t *testing.T) {
	// Arrange
	svc, mocks := newTestAssessmentService()
	student := &entity.Student{ID: 7, ClassID: 1, FirstName: "Аня"}
	assessments := []entity.Assessment{{ID: 1, ClassID: 1}, {ID: 2, ClassID: 1}}
	results := []entity.AssessmentResult{{AssessmentID: 2, StudentID: 7, ScorePercent: scorePtr(85)}}
	averages := map[uint]float64{2: 71.5}

	mocks.students.On("GetByID", uint(7)).Return(student, nil)
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)
	mocks.assessments.On("ListByClassChrono", uint(1)).Return(assessments, nil)
	mocks.assessments.On("ListResultsForStudent", []uint{1, 2}, uint(7)).Return(results, nil)
	mocks.assessments.On("AverageByAssessment", []uint{1, 2}).Return(averages, nil)

	// Act
	_, rows, err := svc.History(5, 7)

	// Assert
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[0].Result)
	assert.Nil(t, rows[0].ClassAverage)
	require.NotNil(t, rows[1].Result)
	assert.Equal(t, 85, *rows[1].Result.ScorePercent)
	require.NotNil(t, rows[1].ClassAverage)
	assert.Equal(t, 71.5, *rows[1].ClassAverage)
}
