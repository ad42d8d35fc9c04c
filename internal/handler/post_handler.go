package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
	"github.com/yourusername/classboard-api/internal/service"
)

// PostHandler обрабатывает запросы ленты объявлений
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler создает новый обработчик объявлений
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest представляет запрос на создание объявления
type CreatePostRequest struct {
	Author  string   `json:"author" binding:"omitempty,max=100"`
	Content string   `json:"content" binding:"required"`
	Links   []string `json:"links"`
}

// List возвращает объявления класса, новые первыми
func (h *PostHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	posts, err := h.postService.List(userID, classID)
	if err != nil {
		h.handlePostError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// Create создает объявление в ленте класса
func (h *PostHandler) Create(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.Create(userID, classID, req.Author, req.Content, req.Links)
	if err != nil {
		h.handlePostError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// SaveWhiteboard публикует снимок доски в ленте класса
func (h *PostHandler) SaveWhiteboard(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required"})
		return
	}

	post, err := h.postService.SaveWhiteboard(userID, classID, file)
	if err != nil {
		h.handlePostError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Delete удаляет объявление
func (h *PostHandler) Delete(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	postID := c.MustGet("postID").(uint)

	if err := h.postService.Delete(userID, postID); err != nil {
		h.handlePostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// handlePostError обрабатывает ошибки и возвращает соответствующий HTTP-статус
func (h *PostHandler) handlePostError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in PostHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
