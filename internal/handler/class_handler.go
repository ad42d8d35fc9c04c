package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
	"github.com/yourusername/classboard-api/internal/service"
)

// ClassHandler обрабатывает запросы управления классами и ссылками доступа
type ClassHandler struct {
	classService  *service.ClassService
	accessService *service.AccessService
	baseURL       string
}

// NewClassHandler создает новый обработчик классов
func NewClassHandler(classService *service.ClassService, accessService *service.AccessService, baseURL string) *ClassHandler {
	return &ClassHandler{
		classService:  classService,
		accessService: accessService,
		baseURL:       baseURL,
	}
}

// CreateClassRequest представляет запрос на создание класса
type CreateClassRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Subject string `json:"subject" binding:"omitempty,max=100"`
}

// ShareLinkRequest представляет запрос на отправку ссылки доступа по email
type ShareLinkRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// List возвращает классы учителя
func (h *ClassHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	classes, err := h.classService.List(userID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	c.JSON(http.StatusOK, classes)
}

// Create создает класс
func (h *ClassHandler) Create(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class, err := h.classService.Create(userID, req.Name, req.Subject)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	c.JSON(http.StatusCreated, class)
}

// Get возвращает класс учителя
func (h *ClassHandler) Get(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	class, err := h.classService.Get(userID, classID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

// Update переименовывает класс или меняет предмет
func (h *ClassHandler) Update(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class, err := h.classService.Update(userID, classID, req.Name, req.Subject)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

// Delete удаляет класс
func (h *ClassHandler) Delete(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	if err := h.classService.Delete(userID, classID); err != nil {
		h.handleClassError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GetAccessLink возвращает действующую ссылку доступа учеников
func (h *ClassHandler) GetAccessLink(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	link, err := h.accessService.Get(userID, classID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

// RotateAccessLink гасит старую ссылку доступа и выпускает новую
func (h *ClassHandler) RotateAccessLink(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	link, err := h.accessService.Rotate(userID, classID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

// ShareAccessLink отправляет ссылку доступа на указанный email
func (h *ClassHandler) ShareAccessLink(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	var req ShareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accessService.Share(c.Request.Context(), userID, classID, req.Email, h.baseURL); err != nil {
		h.handleClassError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": true})
}

// StudentView возвращает публичную витрину класса по токену доступа
func (h *ClassHandler) StudentView(c *gin.Context) {
	view, err := h.accessService.StudentView(c.Param("token"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or revoked access link"})
			return
		}
		h.handleClassError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// handleClassError обрабатывает ошибки и возвращает соответствующий HTTP-статус
func (h *ClassHandler) handleClassError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in ClassHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
