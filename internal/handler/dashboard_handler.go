package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/profiremanager/pfm-api/internal/models"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
	"github.com/profiremanager/pfm-api/pkg/response"
)

type dashboardService interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
}

// DashboardHandler wires the dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats godoc
// @Summary Station dashboard summary
// @Description Returns active headcount, current-week shift counts and
// @Description coverage, month hours and pending replacement requests.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=models.DashboardStats}
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
