package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
	"github.com/yourusername/classboard-api/internal/service"
)

// AssessmentHandler обрабатывает запросы журнала оценок
type AssessmentHandler struct {
	assessmentService *service.AssessmentService
}

// NewAssessmentHandler создает новый обработчик журнала оценок
func NewAssessmentHandler(assessmentService *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// CreateAssessmentRequest представляет запрос на создание контрольной
type CreateAssessmentRequest struct {
	Title          string     `json:"title" binding:"required,max=200"`
	AssessmentDate *time.Time `json:"assessment_date"`
}

// SaveResultsRequest представляет пачку оценок для сохранения
type SaveResultsRequest struct {
	Results []service.ResultEntry `json:"results" binding:"required,min=1"`
}

// List возвращает контрольные класса, новые первыми
func (h *AssessmentHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	assessments, err := h.assessmentService.ListByClass(userID, classID)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessments)
}

// Create создает контрольную в журнале класса
func (h *AssessmentHandler) Create(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	var req CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Time{}
	if req.AssessmentDate != nil {
		date = *req.AssessmentDate
	}

	assessment, err := h.assessmentService.Create(userID, classID, req.Title, date)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assessment)
}

// Grid возвращает таблицу оценок контрольной по активным ученикам
func (h *AssessmentHandler) Grid(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	assessmentID := c.MustGet("assessmentID").(uint)

	assessment, rows, err := h.assessmentService.Grid(userID, assessmentID)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessment": assessment, "rows": rows})
}

// SaveResults сохраняет пачку оценок контрольной
func (h *AssessmentHandler) SaveResults(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	assessmentID := c.MustGet("assessmentID").(uint)

	var req SaveResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.assessmentService.SaveResults(userID, assessmentID, req.Results); err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": len(req.Results)})
}

// Insights возвращает рейтинг класса и группу риска
func (h *AssessmentHandler) Insights(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)

	insights, err := h.assessmentService.Insights(userID, classID)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}

// History возвращает оценки ученика со средними по классу
func (h *AssessmentHandler) History(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	studentID := c.MustGet("studentID").(uint)

	student, rows, err := h.assessmentService.History(userID, studentID)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"student": student, "history": rows})
}

// Export выгружает журнал оценок класса в CSV или XLSX
func (h *AssessmentHandler) Export(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	classID := c.MustGet("classID").(uint)
	format := c.DefaultQuery("format", "csv")

	data, err := h.assessmentService.Export(userID, classID)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	filename := fmt.Sprintf("class_%d_gradebook_%s", classID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, data, filename)
	default:
		h.exportCSV(c, data, filename)
	}
}

// exportCSV выгружает журнал в CSV с правильным экранированием спецсимволов
func (h *AssessmentHandler) exportCSV(c *gin.Context, data *service.ExportData, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	header := []string{"Student"}
	for _, a := range data.Assessments {
		header = append(header, fmt.Sprintf("%s (%s)", a.Title, a.AssessmentDate.Format("2006-01-02")))
	}
	writer.Write(header)

	for _, row := range data.Rows {
		record := []string{sanitizeForExcel(row.Student.FirstName)}
		for i := range data.Assessments {
			record = append(record, formatScoreCell(row.Scores[i], row.Absent[i]))
		}
		writer.Write(record)
	}
}

// exportXLSX выгружает журнал в Excel через StreamWriter
func (h *AssessmentHandler) exportXLSX(c *gin.Context, data *service.ExportData, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Gradebook"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[AssessmentHandler] Failed to create StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	header := []interface{}{"Student"}
	for _, a := range data.Assessments {
		header = append(header, fmt.Sprintf("%s (%s)", a.Title, a.AssessmentDate.Format("2006-01-02")))
	}
	if err := sw.SetRow("A1", header); err != nil {
		log.Printf("[AssessmentHandler] Failed to write header row: %v", err)
	}

	for i, row := range data.Rows {
		rowNum := i + 2
		cell := fmt.Sprintf("A%d", rowNum)

		record := []interface{}{sanitizeForExcel(row.Student.FirstName)}
		for j := range data.Assessments {
			if row.Absent[j] {
				record = append(record, "Absent")
			} else if row.Scores[j] != nil {
				record = append(record, *row.Scores[j])
			} else {
				record = append(record, "")
			}
		}
		if err := sw.SetRow(cell, record); err != nil {
			log.Printf("[AssessmentHandler] Failed to write row %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[AssessmentHandler] Flush failed: %v", err)
	}
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AssessmentHandler] Failed to write Excel response: %v", err)
	}
}

func formatScoreCell(score *int, absent bool) string {
	if absent {
		return "Absent"
	}
	if score == nil {
		return ""
	}
	return strconv.Itoa(*score)
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// handleAssessmentError обрабатывает ошибки и возвращает соответствующий HTTP-статус
func (h *AssessmentHandler) handleAssessmentError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in AssessmentHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
