package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	"github.com/yourusername/classboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// StudentService предоставляет методы для управления списком учеников
type StudentService struct {
	studentRepo repository.StudentRepository
	classRepo   repository.ClassRepository
}

// NewStudentService создает новый сервис учеников
func NewStudentService(studentRepo repository.StudentRepository, classRepo repository.ClassRepository) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		classRepo:   classRepo,
	}
}

// List возвращает учеников класса; onlyActive скрывает отчисленных
func (s *StudentService) List(ownerID, classID uint, onlyActive bool) ([]entity.Student, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}
	if onlyActive {
		return s.studentRepo.ListActiveByClass(classID)
	}
	return s.studentRepo.ListByClass(classID)
}

// CreateBatch добавляет учеников пачкой. Имена, уже существующие
// в классе, пропускаются без учета регистра; дубликаты внутри
// пачки тоже схлопываются.
func (s *StudentService) CreateBatch(ownerID, classID uint, names []string) ([]entity.Student, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}

	existing, err := s.studentRepo.ListByClass(classID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, st := range existing {
		seen[strings.ToLower(st.FirstName)] = true
	}

	students := make([]entity.Student, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		students = append(students, entity.Student{
			ClassID:   classID,
			FirstName: name,
			Active:    true,
		})
	}
	if len(students) == 0 {
		return nil, fmt.Errorf("%w: no new student names to add", apperrors.ErrValidation)
	}

	if err := s.studentRepo.CreateBatch(students); err != nil {
		return nil, err
	}
	return students, nil
}

// Update меняет имя, заметки или активность ученика
func (s *StudentService) Update(ownerID, studentID uint, firstName *string, notes *string, active *bool) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(studentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.classRepo.GetByIDForOwner(student.ClassID, ownerID); err != nil {
		return nil, err
	}

	if firstName != nil {
		name := strings.TrimSpace(*firstName)
		if name == "" {
			return nil, fmt.Errorf("%w: student name cannot be blank", apperrors.ErrValidation)
		}
		student.FirstName = name
	}
	if notes != nil {
		student.Notes = notes
	}
	if active != nil {
		student.Active = *active
	}

	if err := s.studentRepo.Update(student); err != nil {
		return nil, err
	}
	return student, nil
}
