package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/classboard-api/internal/handler/dto"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
	"github.com/yourusername/classboard-api/internal/service"
	"github.com/yourusername/classboard-api/internal/service/livequiz"
)

// LiveQuizHandler обрабатывает запросы живых сессий: управление
// учителем и публичное участие по коду
type LiveQuizHandler struct {
	liveQuizService *service.LiveQuizService
}

// NewLiveQuizHandler создает новый обработчик живых сессий
func NewLiveQuizHandler(liveQuizService *service.LiveQuizService) *LiveQuizHandler {
	return &LiveQuizHandler{liveQuizService: liveQuizService}
}

// CreateSessionRequest представляет запрос на создание сессии
type CreateSessionRequest struct {
	ClassID            uint                     `json:"class_id" binding:"required"`
	Title              string                   `json:"title" binding:"required,max=200"`
	Anonymous          *bool                    `json:"anonymous"`
	Questions          []livequiz.QuestionDraft `json:"questions" binding:"required"`
	SecondsPerQuestion *int                     `json:"seconds_per_question"`
	ShuffleQuestions   bool                     `json:"shuffle_questions"`
	AutoAdvance        *bool                    `json:"auto_advance"`
}

// JoinRequest представляет запрос участника на вход в сессию.
// AnonID опционален: без него сервер сгенерирует новый идентификатор.
type JoinRequest struct {
	AnonID string `json:"anon_id" binding:"omitempty,max=64"`
	Name   string `json:"name" binding:"omitempty,max=100"`
}

// AnswerRequest представляет ответ участника на вопрос
type AnswerRequest struct {
	AnonID     string `json:"anon_id" binding:"required,max=64"`
	QuestionID string `json:"question_id" binding:"required"`
	Choice     string `json:"choice" binding:"required"`
}

// CreateSession обрабатывает запрос на создание живой сессии
func (h *LiveQuizHandler) CreateSession(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// По умолчанию сессии анонимны, а автопереход включен
	anonymous := true
	if req.Anonymous != nil {
		anonymous = *req.Anonymous
	}
	autoAdvance := true
	if req.AutoAdvance != nil {
		autoAdvance = *req.AutoAdvance
	}

	session, err := h.liveQuizService.CreateSession(userID, service.CreateSessionInput{
		ClassID:            req.ClassID,
		Title:              req.Title,
		Anonymous:          anonymous,
		Questions:          req.Questions,
		SecondsPerQuestion: req.SecondsPerQuestion,
		ShuffleQuestions:   req.ShuffleQuestions,
		AutoAdvance:        autoAdvance,
	})
	if err != nil {
		h.handleLiveQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSessionResponse(session))
}

// Status возвращает состояние сессии для панели учителя
func (h *LiveQuizHandler) Status(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	status, err := h.liveQuizService.Status(userID, c.Param("code"))
	if err != nil {
		h.handleLiveQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStatusResponse(status))
}

// Start запускает сессию из lobby
func (h *LiveQuizHandler) Start(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	session, err := h.liveQuizService.Start(userID, c.Param("code"))
	if err != nil {
		h.handleLiveQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(session))
}

// Advance переходит к следующему вопросу или завершает сессию
func (h *LiveQuizHandler) Advance(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	session, err := h.liveQuizService.Advance(userID, c.Param("code"))
	if err != nil {
		h.handleLiveQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(session))
}

// EndQuestion досрочно гасит таймер текущего вопроса
func (h *LiveQuizHandler) EndQuestion(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	session, err := h.liveQuizService.EndQuestion(userID, c.Param("code"))
	if err != nil {
		h.handleLiveQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(session))
}

// EndSession безусловно завершает сессию
func (h *LiveQuizHandler) EndSession(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	session, err := h.liveQuizService.EndSession(userID, c.Param("code"))
	if err != nil {
		h.handleLiveQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(session))
}

// Join регистрирует участника в сессии; повторный вход идемпотентен
func (h *LiveQuizHandler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, participant, err := h.liveQuizService.Join(c.Param("code"), req.AnonID, req.Name)
	if err != nil {
		h.handleLiveQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewJoinResponse(session, participant))
}

// Current возвращает текущий вопрос и остаток таймера для участника
func (h *LiveQuizHandler) Current(c *gin.Context) {
	view, err := h.liveQuizService.Current(c.Param("code"))
	if err != nil {
		h.handleLiveQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCurrentResponse(view))
}

// Answer записывает ответ участника на вопрос
func (h *LiveQuizHandler) Answer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.liveQuizService.Answer(c.Param("code"), req.AnonID, req.QuestionID, req.Choice); err != nil {
		h.handleLiveQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recorded": true})
}

// Results возвращает таблицу лидеров, статистику вопросов и сводку
func (h *LiveQuizHandler) Results(c *gin.Context) {
	results, err := h.liveQuizService.Results(c.Param("code"))
	if err != nil {
		h.handleLiveQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// handleLiveQuizError обрабатывает ошибки и возвращает соответствующий HTTP-статус
func (h *LiveQuizHandler) handleLiveQuizError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrCodeExhausted) {
		log.Printf("ERROR: Session code space exhausted: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not allocate a session code, please retry"})
	} else {
		log.Printf("ERROR: Internal server error in LiveQuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
