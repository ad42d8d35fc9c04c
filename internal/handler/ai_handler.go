package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
	"github.com/yourusername/classboard-api/internal/service"
)

// AIHandler обрабатывает запросы AI-помощника
type AIHandler struct {
	aiService *service.AIService
}

// NewAIHandler создает новый обработчик AI-помощника
func NewAIHandler(aiService *service.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

// ParseEventRequest представляет запрос на разбор текста события
type ParseEventRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// GenerateQuizRequest представляет запрос на генерацию вопросов по конспекту
type GenerateQuizRequest struct {
	Text          string `json:"text" binding:"required,max=20000"`
	QuestionCount int    `json:"question_count" binding:"omitempty,min=1,max=20"`
}

// Status сообщает, доступен ли AI-помощник
func (h *AIHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"available": h.aiService.IsAvailable(),
		"model":     h.aiService.Model(),
	})
}

// ParseEvent извлекает поля события календаря из свободного текста
func (h *AIHandler) ParseEvent(c *gin.Context) {
	var req ParseEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.aiService.ParseEvent(c.Request.Context(), req.Text)
	if err != nil {
		h.handleAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// GenerateQuiz строит черновики вопросов по тексту конспекта.
// Результат учитель правит и отправляет в создание живой сессии.
func (h *AIHandler) GenerateQuiz(c *gin.Context) {
	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions, err := h.aiService.GenerateQuiz(c.Request.Context(), req.Text, req.QuestionCount)
	if err != nil {
		h.handleAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// handleAIError обрабатывает ошибки и возвращает соответствующий HTTP-статус
func (h *AIHandler) handleAIError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: AI request failed in AIHandler: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI request failed"})
	}
}
