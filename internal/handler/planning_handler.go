package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/profiremanager/pfm-api/internal/dto"
	"github.com/profiremanager/pfm-api/internal/service"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
	"github.com/profiremanager/pfm-api/pkg/jobs"
	"github.com/profiremanager/pfm-api/pkg/response"
)

// PlanningHandler exposes the weekly planning endpoints, including manual
// assignment, automatic roster runs and roster exports.
type PlanningHandler struct {
	planning  *service.PlanningService
	scheduler *service.SchedulerService
	exports   *service.ExportService
	runQueue  *jobs.Queue[dto.AutoAssignRequest]
}

// NewPlanningHandler constructs a PlanningHandler. runQueue may be nil, in
// which case async roster runs are rejected.
func NewPlanningHandler(planning *service.PlanningService, scheduler *service.SchedulerService, exports *service.ExportService, runQueue *jobs.Queue[dto.AutoAssignRequest]) *PlanningHandler {
	return &PlanningHandler{
		planning:  planning,
		scheduler: scheduler,
		exports:   exports,
		runQueue:  runQueue,
	}
}

// GetWeek godoc
// @Summary Get the planning grid for a week
// @Tags Planning
// @Produce json
// @Security BearerAuth
// @Param weekStart query string true "Week start date (Monday, YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=dto.WeekPlanningResponse}
// @Router /planning [get]
func (h *PlanningHandler) GetWeek(c *gin.Context) {
	week, err := h.planning.GetWeek(c.Request.Context(), c.Query("weekStart"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, week, nil)
}

// AssignManually godoc
// @Summary Manually assign an employee to a shift slot
// @Tags Planning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ManualAssignRequest true "Assignment"
// @Success 201 {object} response.Envelope{data=models.Assignment}
// @Router /planning/assignments [post]
func (h *PlanningHandler) AssignManually(c *gin.Context) {
	var req dto.ManualAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.planning.AssignManually(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// RemoveAssignment godoc
// @Summary Remove an assignment from the planning
// @Tags Planning
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 204
// @Router /planning/assignments/{id} [delete]
func (h *PlanningHandler) RemoveAssignment(c *gin.Context) {
	if err := h.planning.RemoveAssignment(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AutoAssign godoc
// @Summary Run the automatic assignment engine for a week
// @Description Fills every open slot of the week using availability, rank and
// @Description hour-balancing rules. With async=true the run is queued and a
// @Description run ID is returned immediately.
// @Tags Planning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.AutoAssignRequest true "Run parameters"
// @Success 200 {object} response.Envelope{data=dto.RosterRunReport}
// @Success 202 {object} response.Envelope
// @Router /planning/auto-assign [post]
func (h *PlanningHandler) AutoAssign(c *gin.Context) {
	var req dto.AutoAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if req.Async {
		if h.runQueue == nil {
			response.Error(c, appErrors.New(appErrors.ErrInternal.Code, http.StatusServiceUnavailable, "background runs are not enabled"))
			return
		}
		jobID := uuid.NewString()
		if err := h.runQueue.Enqueue(jobs.Job[dto.AutoAssignRequest]{ID: jobID, Type: "roster-run", Payload: req}); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusServiceUnavailable, "could not queue roster run"))
			return
		}
		response.JSON(c, http.StatusAccepted, gin.H{"job_id": jobID, "week_start": req.WeekStart}, nil)
		return
	}

	report, err := h.scheduler.GenerateWeek(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Export godoc
// @Summary Export the weekly roster as CSV or PDF
// @Tags Planning
// @Produce application/octet-stream
// @Security BearerAuth
// @Param weekStart query string true "Week start date (Monday, YYYY-MM-DD)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /planning/export [get]
func (h *PlanningHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))
	result, err := h.exports.WeeklyRoster(c.Request.Context(), c.Query("weekStart"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
