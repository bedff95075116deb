package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	reportapp "github.com/demandcast/backend/internal/application/report"
	"github.com/demandcast/backend/internal/domain/report"
	"github.com/demandcast/backend/internal/infrastructure/worker"
	"github.com/demandcast/backend/internal/interfaces/http/dto"
)

// ReportHandler handles report dispatch and retrieval API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dispatch validates the filter payload and queues a background report job,
// answering 201 with the job id to poll.
func (h *ReportHandler) Dispatch(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	kind := report.Kind(c.Param("kind"))

	var req report.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	jobID, err := h.reportService.Dispatch(c.Request.Context(), userID, kind, req)
	if err != nil {
		if errors.Is(err, report.ErrUnknownKind) {
			h.NotFound(c, fmt.Sprintf("Unknown report kind %q", kind))
			return
		}
		if errors.Is(err, worker.ErrQueueFull) {
			h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeServiceBusy,
				"Report queue is full, try again later")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.JobDispatchedResponse{JobID: jobID})
}

// Fetch streams the finished report file for the calling user, or returns
// the recorded failure. Pending jobs and jobs owned by other users are 404.
func (h *ReportHandler) Fetch(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	jobID := c.Param("job_id")

	outcome, err := h.reportService.Fetch(c.Request.Context(), userID, jobID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if outcome.Err != nil {
		h.Error(c, dto.GetHTTPStatus(outcome.Err.Code), outcome.Err.Code, outcome.Err.Message)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outcome.FileName))
	c.Data(http.StatusOK, outcome.ContentType, outcome.Content)
}

// Statistics computes the per-(store, SKU) accuracy metric rows
// synchronously, without the job machinery. Filters that match no
// forecasts or no sales are 404, same as the recorded job outcome.
func (h *ReportHandler) Statistics(c *gin.Context) {
	var req report.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rows, err := h.reportService.Statistics(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/jobs/:job_id", h.Fetch)
		reports.POST("/statistics/rows", h.Statistics)
		reports.POST("/:kind", h.Dispatch)
	}
}
