package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/delpresence/backend/internal/examcal"
	"github.com/delpresence/backend/internal/examcal/models"
	"github.com/delpresence/backend/internal/legacysync"
	"github.com/delpresence/backend/internal/reporting"
	"github.com/gin-gonic/gin"
)

// ExamCalendarHandler exposes the exam calendar's generate/read/transition
// operations (§6), built the way the teacher's handlers wrap a service.
type ExamCalendarHandler struct {
	service *examcal.Service
}

// NewExamCalendarHandler constructs the handler. A construction-time error
// loading scheduler config is fatal: the constructor panics.
func NewExamCalendarHandler() *ExamCalendarHandler {
	service, err := examcal.NewService()
	if err != nil {
		panic("exam calendar service: " + err.Error())
	}
	return &ExamCalendarHandler{service: service}
}

type generateRequest struct {
	ProgramID    string   `json:"programId" binding:"required"`
	EvaluationID string   `json:"evaluationId" binding:"required"`
	StartDate    string   `json:"startDate" binding:"required"`
	Holidays     []string `json:"holidays"`
}

// GenerateCalendar handles the "Generate calendar" command.
func (h *ExamCalendarHandler) GenerateCalendar(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid startDate"})
		return
	}

	holidays := make([]time.Time, 0, len(req.Holidays))
	for _, h := range req.Holidays {
		d, err := time.Parse("2006-01-02", h)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid holiday date: " + h})
			return
		}
		holidays = append(holidays, d)
	}

	result, err := h.service.GenerateCalendar(req.ProgramID, req.EvaluationID, start, holidays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": result})
}

// GetCalendar handles the "Get calendar for program" query.
func (h *ExamCalendarHandler) GetCalendar(c *gin.Context) {
	program := c.Param("program")
	period := c.Param("period")
	evaluation := c.Param("evaluation")

	entries, err := h.service.GetCalendar(program, period, evaluation)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": entries})
}

// ExportCalendar streams the calendar as an .xlsx workbook.
func (h *ExamCalendarHandler) ExportCalendar(c *gin.Context) {
	program := c.Param("program")
	period := c.Param("period")
	evaluation := c.Param("evaluation")

	entries, err := h.service.GetCalendar(program, period, evaluation)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	file, err := reporting.BuildExamCalendarWorkbook(entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	filename := fmt.Sprintf("Kalender_Ujian_%s_%s_%s.xlsx", program, period, evaluation)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to generate Excel file"})
		return
	}
}

type bulkTransitionRequest struct {
	ProgramID    string `json:"programId" binding:"required"`
	PeriodID     string `json:"periodId" binding:"required"`
	EvaluationID string `json:"evaluationId" binding:"required"`
	Reason       string `json:"reason"`
}

// SubmitCalendar moves every request in the selector to pending.
func (h *ExamCalendarHandler) SubmitCalendar(c *gin.Context) {
	h.transition(c, models.StatusPending, false)
}

// BulkApprove moves every request in the selector to approved.
func (h *ExamCalendarHandler) BulkApprove(c *gin.Context) {
	h.transition(c, models.StatusApproved, false)
}

// BulkReject moves every request in the selector to rejected, requiring a reason.
func (h *ExamCalendarHandler) BulkReject(c *gin.Context) {
	h.transition(c, models.StatusRejected, true)
}

func (h *ExamCalendarHandler) transition(c *gin.Context, status models.RequestStatus, requireReason bool) {
	var req bulkTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}
	if requireReason && req.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "reason is required"})
		return
	}

	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}

	if err := h.service.BulkTransition(req.ProgramID, req.PeriodID, req.EvaluationID, status, reason); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// SyncTeachingRecords triggers the legacy teaching-schedule import job.
func (h *ExamCalendarHandler) SyncTeachingRecords(c *gin.Context) {
	result, err := legacysync.NewTeachingRecordSyncer().Sync(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": result})
}
