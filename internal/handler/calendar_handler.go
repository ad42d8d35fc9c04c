package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/classboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
	"github.com/yourusername/classboard-api/internal/service"
)

// CalendarHandler обрабатывает запросы календаря
type CalendarHandler struct {
	calendarService *service.CalendarService
}

// NewCalendarHandler создает новый обработчик календаря
func NewCalendarHandler(calendarService *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// CalendarEventRequest представляет запрос на создание или изменение события
type CalendarEventRequest struct {
	ClassID     *uint      `json:"class_id"`
	Title       string     `json:"title" binding:"required,max=200"`
	Description *string    `json:"description"`
	EventDate   time.Time  `json:"event_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
	AllDay      bool       `json:"all_day"`
	EventType   string     `json:"event_type" binding:"omitempty,oneof=general test homework trip"`
}

func (r CalendarEventRequest) toInput() service.CalendarEventInput {
	return service.CalendarEventInput{
		ClassID:     r.ClassID,
		Title:       r.Title,
		Description: r.Description,
		EventDate:   r.EventDate,
		EndDate:     r.EndDate,
		AllDay:      r.AllDay,
		EventType:   r.EventType,
	}
}

// List возвращает события; ?class_id=N добавляет события класса
// к общешкольным, ?global=true оставляет только общешкольные
func (h *CalendarHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	filters := repository.CalendarFilters{GlobalOnly: c.Query("global") == "true"}
	if raw := c.Query("class_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class_id"})
			return
		}
		id := uint(parsed)
		filters.ClassID = &id
	}

	events, err := h.calendarService.List(userID, filters)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// Create создает событие календаря
func (h *CalendarHandler) Create(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req CalendarEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.calendarService.Create(userID, req.toInput())
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// Update перезаписывает событие календаря
func (h *CalendarHandler) Update(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	eventID := c.MustGet("eventID").(uint)

	var req CalendarEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.calendarService.Update(userID, eventID, req.toInput())
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Delete удаляет событие календаря
func (h *CalendarHandler) Delete(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	eventID := c.MustGet("eventID").(uint)

	if err := h.calendarService.Delete(userID, eventID); err != nil {
		h.handleCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// handleCalendarError обрабатывает ошибки и возвращает соответствующий HTTP-статус
func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in CalendarHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
