package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
	"github.com/yourusername/classboard-api/internal/service"
)

// StudentHandler обрабатывает запросы списка учеников
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler создает новый обработчик учеников
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// CreateStudentsRequest представляет запрос на добавление учеников пачкой
type CreateStudentsRequest struct {
	Names []string `json:"names" binding:"required,min=1"`
}

// UpdateStudentRequest представляет запрос на изменение ученика
type UpdateStudentRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	Notes     *string `json:"notes"`
	Active    *bool   `json:"active"`
}

// List возвращает учеников класса; ?active=true скрывает отчисленных
func (h *StudentHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)
	onlyActive := c.Query("active") == "true"

	students, err := h.studentService.List(userID, classID, onlyActive)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// Create добавляет учеников пачкой, пропуская дубликаты имен
func (h *StudentHandler) Create(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	var req CreateStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	students, err := h.studentService.CreateBatch(userID, classID, req.Names)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, students)
}

// Update меняет имя, заметки или активность ученика
func (h *StudentHandler) Update(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	studentID := c.MustGet("studentID").(uint)

	var req UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.studentService.Update(userID, studentID, req.FirstName, req.Notes, req.Active)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// handleStudentError обрабатывает ошибки и возвращает соответствующий HTTP-статус
func (h *StudentHandler) handleStudentError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in StudentHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
