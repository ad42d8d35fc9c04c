package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	"github.com/yourusername/classboard-api/internal/handler/helper"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
	"github.com/yourusername/classboard-api/internal/service"
)

// NoteHandler обрабатывает запросы тем и конспектов.
// Параметр ?kind=exam переключает на экзаменационные материалы.
type NoteHandler struct {
	noteService *service.NoteService
}

// NewNoteHandler создает новый обработчик конспектов
func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateTopicRequest представляет запрос на создание темы
type CreateTopicRequest struct {
	Name string `json:"name" binding:"required,max=200"`
	Kind string `json:"kind" binding:"omitempty,oneof=notes exam"`
}

func topicKind(c *gin.Context) string {
	if c.Query("kind") == entity.TopicKindExam {
		return entity.TopicKindExam
	}
	return entity.TopicKindNotes
}

// ListTopics возвращает темы класса указанного вида
func (h *NoteHandler) ListTopics(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	topics, err := h.noteService.ListTopics(userID, classID, topicKind(c))
	if err != nil {
		h.handleNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, topics)
}

// CreateTopic создает тему
func (h *NoteHandler) CreateTopic(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	var req CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Kind == "" {
		req.Kind = entity.TopicKindNotes
	}

	topic, err := h.noteService.CreateTopic(userID, classID, req.Name, req.Kind)
	if err != nil {
		h.handleNoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, topic)
}

// DeleteTopic удаляет тему вместе с ее конспектами
func (h *NoteHandler) DeleteTopic(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	topicID := c.MustGet("topicID").(uint)

	if err := h.noteService.DeleteTopic(userID, topicID); err != nil {
		h.handleNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListNotes возвращает конспекты класса с темами указанного вида
func (h *NoteHandler) ListNotes(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	rows, err := h.noteService.ListNotes(userID, classID, topicKind(c))
	if err != nil {
		h.handleNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, helper.ConvertNotesWithTopics(rows, h.noteService.FileURLByName))
}

// Upload сохраняет файл конспекта в тему
func (h *NoteHandler) Upload(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)
	topicID := c.MustGet("topicID").(uint)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}

	note, err := h.noteService.Upload(userID, classID, topicID, file)
	if err != nil {
		h.handleNoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, helper.ConvertNote(*note, "", h.noteService.FileURLByName))
}

// Delete удаляет конспект вместе с файлом
func (h *NoteHandler) Delete(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	noteID := c.MustGet("noteID").(uint)

	if err := h.noteService.Delete(userID, noteID); err != nil {
		h.handleNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// handleNoteError обрабатывает ошибки и возвращает соответствующий HTTP-статус
func (h *NoteHandler) handleNoteError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in NoteHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
