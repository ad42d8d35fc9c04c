package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/classboard-api/internal/handler/helper"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
	"github.com/yourusername/classboard-api/internal/service"
)

// TestHandler обрабатывает запросы загруженных контрольных и их категорий
type TestHandler struct {
	testService *service.TestService
}

// NewTestHandler создает новый обработчик контрольных
func NewTestHandler(testService *service.TestService) *TestHandler {
	return &TestHandler{testService: testService}
}

// CreateCategoryRequest представляет запрос на создание категории
type CreateCategoryRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
}

// UpdateTestRequest представляет запрос на изменение работы
type UpdateTestRequest struct {
	Title         *string `json:"title" binding:"omitempty,max=200"`
	Description   *string `json:"description"`
	CategoryID    *uint   `json:"category_id"`
	ClearCategory bool    `json:"clear_category"`
}

// ListCategories возвращает категории класса
func (h *TestHandler) ListCategories(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	categories, err := h.testService.ListCategories(userID, classID)
	if err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// CreateCategory создает категорию контрольных
func (h *TestHandler) CreateCategory(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.testService.CreateCategory(userID, classID, req.Title, req.Description)
	if err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DeleteCategory удаляет категорию; работы остаются без категории
func (h *TestHandler) DeleteCategory(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	categoryID := c.MustGet("categoryID").(uint)

	if err := h.testService.DeleteCategory(userID, categoryID); err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// List возвращает работы класса, новые первыми
func (h *TestHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	tests, err := h.testService.List(userID, classID)
	if err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusOK, helper.ConvertTests(tests, h.testService.FileURLByName))
}

// Upload сохраняет файл контрольной; метаданные приходят в multipart-форме
func (h *TestHandler) Upload(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}

	var categoryID *uint
	if raw := c.PostForm("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		id := uint(parsed)
		categoryID = &id
	}

	var description *string
	if raw := c.PostForm("description"); raw != "" {
		description = &raw
	}

	test, err := h.testService.Upload(userID, classID, categoryID, c.PostForm("title"), description, file)
	if err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusCreated, helper.ConvertTest(*test, h.testService.FileURLByName))
}

// Update меняет название, описание или категорию работы
func (h *TestHandler) Update(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	testID := c.MustGet("testID").(uint)

	var req UpdateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	test, err := h.testService.Update(userID, testID, req.Title, req.Description, req.CategoryID, req.ClearCategory)
	if err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusOK, helper.ConvertTest(*test, h.testService.FileURLByName))
}

// Delete удаляет работу вместе с файлом
func (h *TestHandler) Delete(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	testID := c.MustGet("testID").(uint)

	if err := h.testService.Delete(userID, testID); err != nil {
		h.handleTestError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// handleTestError обрабатывает ошибки и возвращает соответствующий HTTP-статус
func (h *TestHandler) handleTestError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in TestHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
